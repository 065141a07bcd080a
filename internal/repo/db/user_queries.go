package db

const userGetByIDQ = `
SELECT 
	u.id, 
	u.email, 
	u.password,
	u.role,
	u.is_active,
	u.is_email_verified,
	u.created_at, 
	u.updated_at
FROM users u
WHERE u.id = $1
`

const userGetByEmailQ = `
SELECT 
	u.id, 
	u.email, 
	u.password,
	u.role,
	u.is_active,
	u.is_email_verified,
	u.created_at, 
	u.updated_at
FROM users u
WHERE u.email = $1
`

const userCreateQ = `
INSERT INTO users (email, password, role, is_active, is_email_verified) 
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`

const userActivateQ = `
UPDATE users 
SET is_active = TRUE,
	is_email_verified = TRUE,
	updated_at = NOW()
WHERE id = $1`

const userSetActiveQ = `
UPDATE users 
SET is_active = $1,
	updated_at = NOW()
WHERE id = $2`
