package schema

// TableDefinitions contains all the SQL statements to create the database tables
// Don't put REFERENCES and don't put CHECK constraints in the CREATE TABLE statements
var TableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		id UUID PRIMARY KEY,
		company_name VARCHAR(255) NOT NULL,
		website_url TEXT,
		contact_email VARCHAR(255) UNIQUE NOT NULL,
		phone VARCHAR(50),
		industry VARCHAR(255) NOT NULL,
		target_audience TEXT,
		audience_description TEXT NOT NULL,
		newsletter_objectives JSONB NOT NULL DEFAULT '[]',
		primary_cta TEXT NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS csv_uploads (
		id UUID PRIMARY KEY,
		company_id UUID NOT NULL,
		filename VARCHAR(255) NOT NULL,
		status VARCHAR(20) NOT NULL,
		processed_rows INTEGER NOT NULL DEFAULT 0,
		failed_rows INTEGER NOT NULL DEFAULT 0,
		error_message TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS contacts (
		id UUID PRIMARY KEY,
		company_id UUID NOT NULL,
		csv_batch_id UUID,
		name VARCHAR(255) NOT NULL DEFAULT '',
		email VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS industry_insights (
		id UUID PRIMARY KEY,
		company_id UUID NOT NULL,
		industry VARCHAR(255) NOT NULL,
		insights JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS newsletters (
		id UUID PRIMARY KEY,
		company_id UUID NOT NULL,
		industry_insight_id UUID,
		title VARCHAR(255) NOT NULL,
		status VARCHAR(30) NOT NULL DEFAULT 'draft',
		industry_summary TEXT,
		sections JSONB NOT NULL DEFAULT '[]',
		sent_at TIMESTAMPTZ,
		sent_count INTEGER NOT NULL DEFAULT 0,
		failed_count INTEGER NOT NULL DEFAULT 0,
		last_sent_status VARCHAR(30),
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
}

// IndexDefinitions run after the tables exist
var IndexDefinitions = []string{
	`CREATE INDEX IF NOT EXISTS idx_contacts_company_id ON contacts (company_id)`,
	`CREATE INDEX IF NOT EXISTS idx_csv_uploads_company_id ON csv_uploads (company_id)`,
	`CREATE INDEX IF NOT EXISTS idx_newsletters_company_id ON newsletters (company_id)`,
	`CREATE INDEX IF NOT EXISTS idx_newsletters_created_at ON newsletters (created_at DESC)`,
}

// TableNames returns a list of all table names in creation order
var TableNames = []string{
	"companies",
	"csv_uploads",
	"contacts",
	"industry_insights",
	"newsletters",
}
