package sqlinline

const QCreateGenerationsTable = `--sql 7d1f0c2a-58e4-4b8e-9a41-3c6f2e9b1d07
create table if not exists comfy_generations (
  id            uuid primary key,
  prompt        text not null,
  aspect_ratio  text not null,
  frames        integer not null,
  status        text not null,
  prompt_id     text not null default '',
  filename      text not null default '',
  path          text not null default '',
  bytes         bigint not null default 0,
  error_kind    text not null default '',
  error_message text not null default '',
  created_at    timestamptz not null default now(),
  updated_at    timestamptz not null default now()
);
`

const QInsertGeneration = `--sql 2b9e6f41-0c3d-4a7e-8f15-6d2a9c4e7b30
insert into comfy_generations (id, prompt, aspect_ratio, frames, status, created_at, updated_at)
values ($1::uuid, $2, $3, $4, $5, $6, $6);
`

const QCompleteGeneration = `--sql 9a4c2e7d-1f6b-4c38-b0d5-8e3f7a2c6d19
update comfy_generations
set status = 'SUCCEEDED',
    prompt_id = $2,
    filename = $3,
    path = $4,
    bytes = $5,
    updated_at = now()
where id = $1::uuid;
`

const QFailGeneration = `--sql 4e8b1d6a-3c7f-4a29-9e0b-5f2d8c1a7e64
update comfy_generations
set status = 'FAILED',
    error_kind = $2,
    error_message = $3,
    updated_at = now()
where id = $1::uuid;
`

const QSelectGeneration = `--sql c3f7a9e2-6d1b-4f84-a5c0-2e9b7d4f1a38
select id::text, prompt, aspect_ratio, frames, status, prompt_id, filename, path, bytes,
       error_kind, error_message, created_at, updated_at
from comfy_generations
where id = $1::uuid;
`
