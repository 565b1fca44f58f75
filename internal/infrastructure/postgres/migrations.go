package postgres

// Migraciones del esquema, aplicadas en orden por Migrator.

const migration001Up = `
CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY,
    email VARCHAR(254) NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    first_name VARCHAR(150) NOT NULL DEFAULT '',
    last_name VARCHAR(150) NOT NULL DEFAULT '',
    phone VARCHAR(17) NOT NULL DEFAULT '',
    role VARCHAR(30) NOT NULL,
    active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    CONSTRAINT valid_role CHECK (role IN ('ESTUDIANTE', 'DOCENTE_ASESOR', 'TUTOR_EMPRESARIAL', 'COORDINADORA_EMPRESARIAL'))
);

CREATE INDEX IF NOT EXISTS idx_users_role ON users(role);

CREATE TABLE IF NOT EXISTS companies (
    id UUID PRIMARY KEY,
    name VARCHAR(200) NOT NULL,
    tax_id VARCHAR(13) NOT NULL UNIQUE,
    legal_name VARCHAR(200) NOT NULL DEFAULT '',
    address TEXT NOT NULL DEFAULT '',
    phone VARCHAR(17) NOT NULL DEFAULT '',
    email VARCHAR(254) NOT NULL DEFAULT '',
    website VARCHAR(200) NOT NULL DEFAULT '',
    contact_name VARCHAR(150) NOT NULL DEFAULT '',
    contact_email VARCHAR(254) NOT NULL DEFAULT '',
    contact_phone VARCHAR(17) NOT NULL DEFAULT '',
    sector VARCHAR(100) NOT NULL DEFAULT '',
    size VARCHAR(10) NOT NULL DEFAULT '',
    active BOOLEAN NOT NULL DEFAULT TRUE,
    verified BOOLEAN NOT NULL DEFAULT FALSE,
    created_by UUID,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS student_profiles (
    user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
    enrollment_id VARCHAR(20) NOT NULL UNIQUE,
    major VARCHAR(100) NOT NULL DEFAULT '',
    semester INTEGER NOT NULL DEFAULT 1,
    gpa NUMERIC(4,2) NOT NULL DEFAULT 0,
    CONSTRAINT valid_semester CHECK (semester BETWEEN 1 AND 12),
    CONSTRAINT valid_gpa CHECK (gpa >= 0 AND gpa <= 10)
);

CREATE TABLE IF NOT EXISTS advisor_profiles (
    user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
    department VARCHAR(100) NOT NULL DEFAULT '',
    specialty VARCHAR(100) NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS tutor_profiles (
    user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
    company_id UUID REFERENCES companies(id) ON DELETE SET NULL,
    position VARCHAR(100) NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_tutor_profiles_company ON tutor_profiles(company_id);
`

const migration001Down = `
DROP TABLE IF EXISTS tutor_profiles;
DROP TABLE IF EXISTS advisor_profiles;
DROP TABLE IF EXISTS student_profiles;
DROP TABLE IF EXISTS companies;
DROP TABLE IF EXISTS users;
`

const migration002Up = `
CREATE TABLE IF NOT EXISTS postings (
    id UUID PRIMARY KEY,
    company_id UUID NOT NULL REFERENCES companies(id) ON DELETE RESTRICT,
    title VARCHAR(200) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    requirements TEXT NOT NULL DEFAULT '',
    eligible_majors TEXT NOT NULL DEFAULT '',
    min_semester INTEGER NOT NULL DEFAULT 1,
    min_gpa NUMERIC(4,2),
    area VARCHAR(100) NOT NULL DEFAULT '',
    modality VARCHAR(20) NOT NULL DEFAULT 'PRESENCIAL',
    location VARCHAR(200) NOT NULL DEFAULT '',
    schedule VARCHAR(100) NOT NULL DEFAULT '',
    duration_months INTEGER NOT NULL DEFAULT 6,
    slots_available INTEGER NOT NULL DEFAULT 1,
    slots_filled INTEGER NOT NULL DEFAULT 0,
    start_date DATE,
    application_deadline DATE,
    paid BOOLEAN NOT NULL DEFAULT FALSE,
    stipend_amount NUMERIC(10,2),
    benefits TEXT NOT NULL DEFAULT '',
    status VARCHAR(20) NOT NULL DEFAULT 'ABIERTA',
    closed_by_capacity BOOLEAN NOT NULL DEFAULT FALSE,
    created_by UUID,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    CONSTRAINT valid_slots CHECK (slots_available >= 1 AND slots_filled >= 0 AND slots_filled <= slots_available),
    CONSTRAINT valid_posting_status CHECK (status IN ('ABIERTA', 'CERRADA', 'PAUSADA', 'CANCELADA')),
    CONSTRAINT valid_modality CHECK (modality IN ('PRESENCIAL', 'REMOTO', 'HIBRIDO'))
);

CREATE INDEX IF NOT EXISTS idx_postings_company ON postings(company_id);
CREATE INDEX IF NOT EXISTS idx_postings_open ON postings(created_at DESC) WHERE status = 'ABIERTA';

CREATE TABLE IF NOT EXISTS applications (
    id UUID PRIMARY KEY,
    student_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    posting_id UUID NOT NULL REFERENCES postings(id) ON DELETE CASCADE,
    status VARCHAR(20) NOT NULL DEFAULT 'PENDIENTE',
    motivation TEXT NOT NULL DEFAULT '',
    selected_at TIMESTAMP WITH TIME ZONE,
    selected_by UUID,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    CONSTRAINT uq_applications_student_posting UNIQUE (student_id, posting_id),
    CONSTRAINT valid_application_status CHECK (status IN ('PENDIENTE', 'SELECCIONADO', 'RECHAZADO'))
);

CREATE INDEX IF NOT EXISTS idx_applications_posting ON applications(posting_id);
`

const migration002Down = `
DROP TABLE IF EXISTS applications;
DROP TABLE IF EXISTS postings;
`

const migration003Up = `
CREATE TABLE IF NOT EXISTS internships (
    id UUID PRIMARY KEY,
    student_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    advisor_id UUID REFERENCES users(id) ON DELETE SET NULL,
    tutor_id UUID REFERENCES users(id) ON DELETE SET NULL,
    company_id UUID REFERENCES companies(id) ON DELETE SET NULL,
    posting_id UUID REFERENCES postings(id) ON DELETE SET NULL,
    area VARCHAR(100) NOT NULL DEFAULT '',
    project TEXT NOT NULL DEFAULT '',
    start_date DATE,
    end_date DATE,
    assigned_at TIMESTAMP WITH TIME ZONE,
    assigned_by UUID,
    status VARCHAR(20) NOT NULL DEFAULT 'PENDIENTE',
    closed BOOLEAN NOT NULL DEFAULT FALSE,
    closed_by UUID,
    final_grade NUMERIC(5,2),
    defense_date TIMESTAMP WITH TIME ZONE,
    defense_place VARCHAR(200) NOT NULL DEFAULT '',
    defense_notes TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    CONSTRAINT valid_internship_status CHECK (status IN ('PENDIENTE', 'ASIGNADA', 'EN_CURSO', 'COMPLETADA', 'CANCELADA')),
    CONSTRAINT valid_final_grade CHECK (final_grade IS NULL OR (final_grade >= 0 AND final_grade <= 100)),
    CONSTRAINT valid_internship_dates CHECK (start_date IS NULL OR end_date IS NULL OR end_date > start_date)
);

-- Un estudiante tiene a lo más una práctica activa.
CREATE UNIQUE INDEX IF NOT EXISTS uq_internships_active_student
    ON internships(student_id) WHERE status IN ('ASIGNADA', 'EN_CURSO');
CREATE INDEX IF NOT EXISTS idx_internships_advisor_active
    ON internships(advisor_id) WHERE status IN ('ASIGNADA', 'EN_CURSO');
CREATE INDEX IF NOT EXISTS idx_internships_tutor ON internships(tutor_id);

CREATE TABLE IF NOT EXISTS deliverables (
    id UUID PRIMARY KEY,
    internship_id UUID NOT NULL REFERENCES internships(id) ON DELETE CASCADE,
    student_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    title VARCHAR(200) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    file_path TEXT NOT NULL DEFAULT '',
    due_date TIMESTAMP WITH TIME ZONE NOT NULL,
    submitted_at TIMESTAMP WITH TIME ZONE,
    evaluated_at TIMESTAMP WITH TIME ZONE,
    evaluated_by UUID,
    grade NUMERIC(5,2),
    feedback TEXT NOT NULL DEFAULT '',
    status VARCHAR(20) NOT NULL DEFAULT 'PENDIENTE',
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    CONSTRAINT valid_deliverable_status CHECK (status IN ('PENDIENTE', 'ENVIADO', 'REVISADO', 'APROBADO', 'RECHAZADO')),
    CONSTRAINT valid_grade CHECK (grade IS NULL OR (grade >= 0 AND grade <= 100))
);

CREATE INDEX IF NOT EXISTS idx_deliverables_internship ON deliverables(internship_id);

CREATE TABLE IF NOT EXISTS meetings (
    id UUID PRIMARY KEY,
    internship_id UUID NOT NULL REFERENCES internships(id) ON DELETE CASCADE,
    advisor_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    student_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    type VARCHAR(20) NOT NULL,
    title VARCHAR(200) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    scheduled_at TIMESTAMP WITH TIME ZONE NOT NULL,
    duration_minutes INTEGER NOT NULL DEFAULT 60,
    location VARCHAR(200) NOT NULL DEFAULT '',
    virtual_link TEXT NOT NULL DEFAULT '',
    status VARCHAR(20) NOT NULL DEFAULT 'PROGRAMADA',
    notes TEXT NOT NULL DEFAULT '',
    agreements TEXT NOT NULL DEFAULT '',
    student_notified BOOLEAN NOT NULL DEFAULT FALSE,
    notified_at TIMESTAMP WITH TIME ZONE,
    reminded_at TIMESTAMP WITH TIME ZONE,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    CONSTRAINT valid_meeting_type CHECK (type IN ('SEGUIMIENTO', 'SUSTENTACION')),
    CONSTRAINT valid_meeting_status CHECK (status IN ('PROGRAMADA', 'REALIZADA', 'CANCELADA', 'REPROGRAMADA'))
);

-- Una sustentación por práctica.
CREATE UNIQUE INDEX IF NOT EXISTS uq_meetings_defense
    ON meetings(internship_id) WHERE type = 'SUSTENTACION';
CREATE INDEX IF NOT EXISTS idx_meetings_scheduled ON meetings(scheduled_at)
    WHERE status IN ('PROGRAMADA', 'REPROGRAMADA');

CREATE TABLE IF NOT EXISTS observations (
    id UUID PRIMARY KEY,
    internship_id UUID NOT NULL REFERENCES internships(id) ON DELETE CASCADE,
    author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    text TEXT NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_observations_internship ON observations(internship_id);
`

const migration003Down = `
DROP TABLE IF EXISTS observations;
DROP TABLE IF EXISTS meetings;
DROP TABLE IF EXISTS deliverables;
DROP TABLE IF EXISTS internships;
`

const migration004Up = `
CREATE TABLE IF NOT EXISTS bulk_notifications (
    id UUID PRIMARY KEY,
    sender_id UUID NOT NULL,
    recipient_ids UUID[] NOT NULL DEFAULT '{}',
    type VARCHAR(20) NOT NULL,
    subject VARCHAR(200) NOT NULL,
    message TEXT NOT NULL,
    send_email BOOLEAN NOT NULL DEFAULT TRUE,
    requires_confirmation BOOLEAN NOT NULL DEFAULT FALSE,
    sent BOOLEAN NOT NULL DEFAULT FALSE,
    sent_at TIMESTAMP WITH TIME ZONE,
    total_recipients INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS notifications (
    id UUID PRIMARY KEY,
    sender_id UUID NOT NULL,
    recipient_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    bulk_id UUID REFERENCES bulk_notifications(id) ON DELETE SET NULL,
    type VARCHAR(20) NOT NULL,
    subject VARCHAR(200) NOT NULL,
    message TEXT NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'PENDIENTE',
    sent_at TIMESTAMP WITH TIME ZONE,
    read_at TIMESTAMP WITH TIME ZONE,
    send_email BOOLEAN NOT NULL DEFAULT TRUE,
    requires_confirmation BOOLEAN NOT NULL DEFAULT FALSE,
    confirmed_at TIMESTAMP WITH TIME ZONE,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    CONSTRAINT valid_notification_type CHECK (type IN ('INFORMATIVA', 'IMPORTANTE', 'URGENTE', 'RECORDATORIO')),
    CONSTRAINT valid_notification_status CHECK (status IN ('PENDIENTE', 'ENVIADA', 'LEIDA'))
);

CREATE INDEX IF NOT EXISTS idx_notifications_recipient ON notifications(recipient_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_notifications_unread ON notifications(recipient_id)
    WHERE status IN ('PENDIENTE', 'ENVIADA');
`

const migration004Down = `
DROP TABLE IF EXISTS notifications;
DROP TABLE IF EXISTS bulk_notifications;
`

const migration005Up = `
CREATE TABLE IF NOT EXISTS surveys (
    id UUID PRIMARY KEY,
    title VARCHAR(200) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    audience VARCHAR(20) NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'BORRADOR',
    opens_at TIMESTAMP WITH TIME ZONE,
    closes_at TIMESTAMP WITH TIME ZONE,
    created_by UUID,
    anonymous BOOLEAN NOT NULL DEFAULT FALSE,
    allow_multiple BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    CONSTRAINT valid_audience CHECK (audience IN ('ESTUDIANTES', 'TUTORES', 'DOCENTES', 'TODOS')),
    CONSTRAINT valid_survey_status CHECK (status IN ('BORRADOR', 'ACTIVA', 'CERRADA'))
);

CREATE TABLE IF NOT EXISTS survey_questions (
    id UUID PRIMARY KEY,
    survey_id UUID NOT NULL REFERENCES surveys(id) ON DELETE CASCADE,
    text TEXT NOT NULL,
    type VARCHAR(20) NOT NULL,
    sort_order INTEGER NOT NULL,
    required BOOLEAN NOT NULL DEFAULT TRUE,
    options JSONB NOT NULL DEFAULT '[]'::jsonb,
    CONSTRAINT uq_survey_questions_order UNIQUE (survey_id, sort_order)
);

CREATE TABLE IF NOT EXISTS survey_responses (
    id UUID PRIMARY KEY,
    survey_id UUID NOT NULL REFERENCES surveys(id) ON DELETE CASCADE,
    respondent_id UUID REFERENCES users(id) ON DELETE SET NULL,
    internship_id UUID REFERENCES internships(id) ON DELETE SET NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS survey_answers (
    id UUID PRIMARY KEY,
    response_id UUID NOT NULL REFERENCES survey_responses(id) ON DELETE CASCADE,
    question_id UUID NOT NULL REFERENCES survey_questions(id) ON DELETE CASCADE,
    text TEXT NOT NULL DEFAULT '',
    numeric_value INTEGER,
    boolean_value BOOLEAN,
    selected JSONB NOT NULL DEFAULT '[]'::jsonb,
    CONSTRAINT uq_survey_answers UNIQUE (response_id, question_id),
    CONSTRAINT valid_numeric CHECK (numeric_value IS NULL OR numeric_value BETWEEN 1 AND 5)
);

-- Recibo de participación: bloquea duplicados también en encuestas anónimas.
CREATE TABLE IF NOT EXISTS survey_receipts (
    survey_id UUID NOT NULL REFERENCES surveys(id) ON DELETE CASCADE,
    user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    PRIMARY KEY (survey_id, user_id)
);
`

const migration005Down = `
DROP TABLE IF EXISTS survey_receipts;
DROP TABLE IF EXISTS survey_answers;
DROP TABLE IF EXISTS survey_responses;
DROP TABLE IF EXISTS survey_questions;
DROP TABLE IF EXISTS surveys;
`

const migration006Up = `
CREATE TABLE IF NOT EXISTS documents (
    id UUID PRIMARY KEY,
    owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    internship_id UUID REFERENCES internships(id) ON DELETE SET NULL,
    type VARCHAR(30) NOT NULL,
    name VARCHAR(255) NOT NULL,
    file_path TEXT NOT NULL,
    hash CHAR(64) NOT NULL,
    size BIGINT NOT NULL DEFAULT 0,
    valid BOOLEAN NOT NULL DEFAULT TRUE,
    uploaded_by UUID,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    CONSTRAINT valid_document_type CHECK (type IN ('CV', 'CARTA_PRESENTACION', 'CONVENIO', 'CONSTANCIA', 'INFORME', 'OTRO'))
);

CREATE INDEX IF NOT EXISTS idx_documents_owner ON documents(owner_id);
`

const migration006Down = `
DROP TABLE IF EXISTS documents;
`

// GetMigrations devuelve las migraciones en orden de versión.
func GetMigrations() []Migration {
	return []Migration{
		{Version: 1, Name: "users_companies", UpSQL: migration001Up, DownSQL: migration001Down},
		{Version: 2, Name: "postings_applications", UpSQL: migration002Up, DownSQL: migration002Down},
		{Version: 3, Name: "internships_tracking", UpSQL: migration003Up, DownSQL: migration003Down},
		{Version: 4, Name: "notifications", UpSQL: migration004Up, DownSQL: migration004Down},
		{Version: 5, Name: "surveys", UpSQL: migration005Up, DownSQL: migration005Down},
		{Version: 6, Name: "documents", UpSQL: migration006Up, DownSQL: migration006Down},
	}
}
