package database

const postgresSchema = `
CREATE TABLE IF NOT EXISTS picks (
    id           UUID PRIMARY KEY,
    profile      TEXT             NOT NULL,
    sport        TEXT             NOT NULL,
    match_date   TIMESTAMPTZ      NOT NULL,
    matchup      TEXT             NOT NULL,
    home_team    TEXT             NOT NULL,
    away_team    TEXT             NOT NULL,
    pick_type    TEXT             NOT NULL,
    side         TEXT             NOT NULL,
    line         DOUBLE PRECISION NOT NULL DEFAULT 0,
    details      TEXT             NOT NULL,
    odds         DOUBLE PRECISION NOT NULL,
    edge         DOUBLE PRECISION NOT NULL DEFAULT 0,
    status       TEXT             NOT NULL DEFAULT 'PENDING',
    profit       DOUBLE PRECISION,
    result_score TEXT,
    created_at   TIMESTAMPTZ      NOT NULL DEFAULT NOW(),
    updated_at   TIMESTAMPTZ      NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_picks_pending ON picks(profile, matchup, match_date) WHERE status = 'PENDING';
CREATE INDEX IF NOT EXISTS idx_picks_match_date ON picks(match_date DESC);

CREATE TABLE IF NOT EXISTS team_stats (
    team_name       TEXT PRIMARY KEY,
    season          TEXT             NOT NULL,
    games_played    INTEGER          NOT NULL,
    points_per_game DOUBLE PRECISION NOT NULL,
    points_allowed  DOUBLE PRECISION NOT NULL,
    pace            DOUBLE PRECISION NOT NULL,
    efficiency      DOUBLE PRECISION NOT NULL,
    recent_trend    DOUBLE PRECISION NOT NULL,
    injury_impact   DOUBLE PRECISION NOT NULL DEFAULT 0,
    days_rest       INTEGER          NOT NULL,
    avg_margin      DOUBLE PRECISION NOT NULL,
    last_game_date  TIMESTAMPTZ      NOT NULL,
    updated_at      TIMESTAMPTZ      NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS trades (
    id           TEXT PRIMARY KEY,
    game_id      TEXT             NOT NULL,
    team         TEXT             NOT NULL,
    condition_id TEXT             NOT NULL,
    outcome      TEXT             NOT NULL DEFAULT '',
    action       TEXT             NOT NULL,
    entry_price  DOUBLE PRECISION NOT NULL,
    vegas_price  DOUBLE PRECISION NOT NULL,
    amount       DOUBLE PRECISION NOT NULL,
    status       TEXT             NOT NULL DEFAULT 'OPEN',
    pnl          DOUBLE PRECISION NOT NULL DEFAULT 0,
    created_at   TIMESTAMPTZ      NOT NULL DEFAULT NOW(),
    updated_at   TIMESTAMPTZ      NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_trades_status ON trades(status);
`

// SQLite has no UUID or timestamp types; times are RFC3339 text in UTC.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS picks (
    id           TEXT PRIMARY KEY,
    profile      TEXT NOT NULL,
    sport        TEXT NOT NULL,
    match_date   TEXT NOT NULL,
    matchup      TEXT NOT NULL,
    home_team    TEXT NOT NULL,
    away_team    TEXT NOT NULL,
    pick_type    TEXT NOT NULL,
    side         TEXT NOT NULL,
    line         REAL NOT NULL DEFAULT 0,
    details      TEXT NOT NULL,
    odds         REAL NOT NULL,
    edge         REAL NOT NULL DEFAULT 0,
    status       TEXT NOT NULL DEFAULT 'PENDING',
    profit       REAL,
    result_score TEXT,
    created_at   TEXT NOT NULL,
    updated_at   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_picks_lookup     ON picks(profile, matchup, match_date, status);
CREATE INDEX IF NOT EXISTS idx_picks_match_date ON picks(match_date DESC);

CREATE TABLE IF NOT EXISTS trades (
    id           TEXT PRIMARY KEY,
    game_id      TEXT NOT NULL,
    team         TEXT NOT NULL,
    condition_id TEXT NOT NULL,
    outcome      TEXT NOT NULL DEFAULT '',
    action       TEXT NOT NULL,
    entry_price  REAL NOT NULL,
    vegas_price  REAL NOT NULL,
    amount       REAL NOT NULL,
    status       TEXT NOT NULL DEFAULT 'OPEN',
    pnl          REAL NOT NULL DEFAULT 0,
    created_at   TEXT NOT NULL,
    updated_at   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_status ON trades(status);
`
