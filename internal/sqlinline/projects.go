// Package sqlinline centralizes every SQL statement the service runs. Each
// constant carries a --sql marker so the sqllint tool can verify no query
// string lives outside this package.
package sqlinline

const QEnsureSchema = `--sql 566e3fac-182c-46a0-9153-da065c2399e2
create table if not exists projects (
    id               text primary key,
    name             text not null,
    snapshot_json    jsonb not null,
    consistency_json jsonb not null default '{}'::jsonb,
    updated_at       timestamptz not null default now()
);

create table if not exists project_images (
    id           text primary key,
    project_id   text not null references projects (id) on delete cascade,
    url          text not null,
    prompt       text not null,
    object_label text not null default '',
    country      text not null default '',
    created_at   timestamptz not null default now()
);

create index if not exists idx_project_images_project
    on project_images (project_id, created_at desc);
`

const QInsertProject = `--sql e1a10af9-98d0-44f2-87fd-7dd25cb75430
insert into projects (id, name, snapshot_json, consistency_json, updated_at)
values ($1, $2, $3, $4, $5);
`

const QGetProject = `--sql be104500-8765-4185-9e7b-4c1132b66a28
select id, name, snapshot_json, consistency_json, updated_at
from projects
where id = $1;
`

const QListProjects = `--sql 9574adbd-ebbc-490a-8b09-e6d74ad7ffa1
select id, name, snapshot_json, consistency_json, updated_at
from projects
order by updated_at desc;
`

const QUpdateProjectScene = `--sql b96fd0ac-cea2-4ca7-a950-cb61ed365b27
update projects
set snapshot_json = $2,
    consistency_json = $3,
    updated_at = $4
where id = $1;
`

const QRenameProject = `--sql 1b25ec04-65de-4928-82b8-8a8b21b5a856
update projects
set name = $2,
    updated_at = $3
where id = $1;
`

const QDeleteProject = `--sql 71859fb2-6ae7-4973-b7db-2062be0341a0
delete from projects
where id = $1;
`

const QInsertProjectImage = `--sql db779391-8881-47f4-bd89-9f362eaf1270
insert into project_images (id, project_id, url, prompt, object_label, country, created_at)
values ($1, $2, $3, $4, $5, $6, $7);
`

const QListProjectImages = `--sql 9f48d914-a6d7-45e3-9cfe-13b440917a0f
select id, url, prompt, object_label, country, created_at
from project_images
where project_id = $1
order by created_at desc, id desc;
`
