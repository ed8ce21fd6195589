package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS proposals (
    id                   TEXT PRIMARY KEY,
    title                TEXT NOT NULL,
    active_client        TEXT,
    proposal_date        TEXT,
    saved_at             TEXT NOT NULL,
    document             TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS proposal_versions (
    proposal_id          TEXT NOT NULL REFERENCES proposals(id) ON DELETE CASCADE,
    version              INTEGER NOT NULL,
    title                TEXT NOT NULL,
    saved_at             TEXT NOT NULL,
    document             TEXT NOT NULL,
    PRIMARY KEY (proposal_id, version)
);

CREATE INDEX IF NOT EXISTS idx_proposals_saved ON proposals(saved_at);
`
