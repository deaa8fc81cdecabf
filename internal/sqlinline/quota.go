package sqlinline

const QCreateQuotaRecords = `--sql 3f6c2a9e-8d41-4b7a-b0e2-5c9d1a7e4f60
create table if not exists quota_records (
  identity text primary key,
  remaining int not null,
  last_reset_date text not null,
  updated_at timestamptz not null default now()
);
`

const QSelectQuotaRecord = `--sql a1d7e5c3-2b94-4f08-9e6a-7c3b8d2f1e45
select remaining, last_reset_date
from quota_records
where identity = $1::text
limit 1;
`

const QUpsertQuotaRecord = `--sql 5b2e9f14-6c3d-4a87-8f1b-0d4e7a9c3b26
insert into quota_records (identity, remaining, last_reset_date, updated_at)
values ($1::text, $2::int, $3::text, now())
on conflict (identity) do update set
  remaining = excluded.remaining,
  last_reset_date = excluded.last_reset_date,
  updated_at = now();
`

// SQLite dialect of the quota queries. The marker line is a plain comment there.

const QSQLiteCreateQuotaRecords = `--sql 9c4a1e7b-3d52-4f86-a0b9-2e6d8c5f7a13
create table if not exists quota_records (
  identity text primary key,
  remaining integer not null,
  last_reset_date text not null,
  updated_at text not null default (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);
`

const QSQLiteSelectQuotaRecord = `--sql e7b3c9d1-5a26-4e48-9f0c-1b8a4d6e2c97
select remaining, last_reset_date
from quota_records
where identity = ?
limit 1;
`

const QSQLiteUpsertQuotaRecord = `--sql 2d8f6b4a-9e13-4c75-b2a0-7f5e3c1d9b68
insert into quota_records (identity, remaining, last_reset_date, updated_at)
values (?, ?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
on conflict (identity) do update set
  remaining = excluded.remaining,
  last_reset_date = excluded.last_reset_date,
  updated_at = excluded.updated_at;
`
