package db

const tokenColumns = `
	id,
	user_id,
	token_hash,
	device_id,
	ip,
	user_agent,
	issued_at,
	last_used_at,
	idle_expires_at,
	absolute_expires_at,
	replaced_by,
	revoked_at`

const createTokenQ = `
INSERT INTO refresh_tokens (
	id,
	user_id,
	token_hash,
	device_id,
	ip,
	user_agent,
	issued_at,
	idle_expires_at,
	absolute_expires_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

const getTokenByHashQ = `SELECT` + tokenColumns + `
FROM refresh_tokens
WHERE token_hash = $1
`

const getTokenByIDQ = `SELECT` + tokenColumns + `
FROM refresh_tokens
WHERE id = $1
`

const lockTokenQ = `
SELECT replaced_by, revoked_at
FROM refresh_tokens
WHERE id = $1
FOR UPDATE
`

const linkTokenQ = `
UPDATE refresh_tokens
SET replaced_by = $1, last_used_at = $2
WHERE id = $3
`

const revokeTokenQ = `
UPDATE refresh_tokens
SET revoked_at = $1
WHERE id = $2 AND revoked_at IS NULL
`

const revokeByDeviceQ = `
UPDATE refresh_tokens
SET revoked_at = $1
WHERE user_id = $2 AND device_id = $3 AND revoked_at IS NULL
`

const revokeAllTokensQ = `
UPDATE refresh_tokens
SET revoked_at = $1
WHERE user_id = $2 AND revoked_at IS NULL
`
