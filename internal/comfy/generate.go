package comfy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"comfygen/internal/domain"
	"comfygen/internal/storage"
	"comfygen/internal/workflow"
)

// Generate runs the full job: load the template, patch it, queue it, wait
// for the outputs and, when req.OutputDir is set, download the first
// artifact into that directory. Every failure is returned as a *Error so
// callers can branch on KindOf(err).
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*Result, error) {
	start := time.Now()
	res, err := c.generate(ctx, req)
	if err != nil {
		evt := c.logger.Error().Err(err).Str("kind", string(KindOf(err)))
		if res != nil && res.PromptID != "" {
			evt = evt.Str("prompt_id", res.PromptID)
		}
		evt.Dur("elapsed", time.Since(start)).Msg("comfy: generation failed")
		return nil, err
	}
	res.Elapsed = time.Since(start)
	c.logger.Info().
		Str("prompt_id", res.PromptID).
		Str("filename", res.Artifact.Filename).
		Str("path", res.Path).
		Int("polls", res.Polls).
		Dur("elapsed", res.Elapsed).
		Msg("comfy: generation finished")
	return res, nil
}

// generate returns a partially filled Result alongside errors raised after
// submission so the prompt id can be logged.
func (c *Client) generate(ctx context.Context, req GenerateRequest) (*Result, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, newError(KindInvalidInput, "validate", domain.ErrInvalidPrompt)
	}
	frames := req.Frames
	if frames == 0 {
		frames = DefaultFrames
	}
	if frames < 0 {
		return nil, errorf(KindInvalidInput, "validate", "%w: got %d", domain.ErrInvalidFrames, frames)
	}

	tpl, err := c.loadTemplate()
	if err != nil {
		return nil, newError(KindTemplateLoad, "load template", err)
	}

	resolution, err := req.AspectRatio.Resolution()
	if err != nil {
		return nil, newError(KindInvalidInput, "resolve aspect", err)
	}

	patched, err := workflow.Patch(tpl, c.mapping, workflow.Values{
		Prompt: prompt,
		Width:  resolution.Width,
		Height: resolution.Height,
		Frames: frames,
	})
	if err != nil {
		return nil, newError(KindTemplateSchema, "patch template", err)
	}

	promptID, err := c.Queue(ctx, patched)
	if err != nil {
		return nil, err
	}
	res := &Result{PromptID: promptID, Resolution: resolution, Frames: frames}

	outputs, polls, err := c.waitForOutputs(ctx, promptID)
	res.Polls = polls
	if err != nil {
		return res, err
	}

	artifact, err := FirstArtifact(outputs, c.mapping.Output)
	if err != nil {
		return res, err
	}
	res.Artifact = artifact

	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		return res, nil
	}
	data, err := c.View(ctx, artifact)
	if err != nil {
		return res, err
	}
	path, err := storage.Save(ctx, outputDir, artifact.Filename, data)
	if err != nil {
		return res, newError(KindArtifactWrite, "save artifact", err)
	}
	res.Path = path
	res.Bytes = int64(len(data))
	return res, nil
}

var errJobNotFinished = errors.New("job not finished")

func (c *Client) loadTemplate() (workflow.Template, error) {
	return workflow.LoadTemplate(c.templatePath)
}

// waitForOutputs polls the history endpoint every pollInterval until the
// job reports outputs or the timeout elapses. Poll failures are logged and
// retried within the bound; they never extend it.
func (c *Client) waitForOutputs(ctx context.Context, promptID string) (Outputs, int, error) {
	waitCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	polls := 0
	var lastErr error
	for {
		polls++
		entry, found, err := c.History(waitCtx, promptID)
		switch {
		case err != nil:
			lastErr = err
			if waitCtx.Err() == nil {
				c.logger.Warn().Err(err).Str("prompt_id", promptID).Int("poll", polls).Msg("comfy: history poll failed")
			}
		case found && strings.EqualFold(entry.Status.StatusStr, "error"):
			return nil, polls, errorf(KindJobFailed, "wait", "prompt %s reported execution error", promptID)
		case found && len(entry.Outputs) > 0:
			c.logger.Debug().Str("prompt_id", promptID).Int("polls", polls).Msg("comfy: job finished")
			return entry.Outputs, polls, nil
		default:
			lastErr = errJobNotFinished
		}

		select {
		case <-waitCtx.Done():
			cause := waitCtx.Err()
			reason := fmt.Sprintf("not finished within %s", c.timeout)
			if ctx.Err() != nil {
				cause = ctx.Err()
				reason = "wait ended by caller"
			}
			if lastErr != nil && !errors.Is(lastErr, errJobNotFinished) && !errors.Is(lastErr, cause) {
				cause = fmt.Errorf("%w (last poll error: %v)", cause, lastErr)
			}
			return nil, polls, errorf(KindTimeout, "wait", "prompt %s %s after %d polls: %w", promptID, reason, polls, cause)
		case <-ticker.C:
		}
	}
}
