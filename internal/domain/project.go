package domain

import "time"

// ProjectStatus labels a project's current stage. Statuses are informational
// tags, not a guarded workflow: any status may be set to any other.
type ProjectStatus string

const (
	StatusPending          ProjectStatus = "pending"
	StatusProposalSent     ProjectStatus = "proposal_sent"
	StatusProposalAccepted ProjectStatus = "proposal_accepted"
	StatusApproved         ProjectStatus = "approved"
	StatusCompleted        ProjectStatus = "completed"
	StatusOnHold           ProjectStatus = "on_hold"
)

// StatusLabels maps statuses to their display labels.
var StatusLabels = map[ProjectStatus]string{
	StatusPending:          "Pendente",
	StatusProposalSent:     "Proposta Enviada",
	StatusProposalAccepted: "Proposta Aceite",
	StatusApproved:         "Aprovado",
	StatusCompleted:        "Concluído",
	StatusOnHold:           "Em Espera",
}

// StatusColors maps statuses to their presentational color category.
var StatusColors = map[ProjectStatus]string{
	StatusPending:          "yellow",
	StatusProposalSent:     "blue",
	StatusProposalAccepted: "purple",
	StatusApproved:         "green",
	StatusCompleted:        "gray",
	StatusOnHold:           "red",
}

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s ProjectStatus) bool {
	_, ok := StatusLabels[s]
	return ok
}

// DocumentType classifies a project document.
type DocumentType string

const (
	DocPropostaComercial DocumentType = "proposta_comercial"
	DocPO                DocumentType = "po"
	DocGuiaEntrega       DocumentType = "guia_entrega"
	DocFatura            DocumentType = "fatura"
	DocRecibo            DocumentType = "recibo"
	DocCertificacao      DocumentType = "certificacao"
)

// ProjectImage is a photo owned by exactly one project and one bucket
// (before or after).
type ProjectImage struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProjectDocument is a file attached to a project. The store allows more
// than one document per type; forms look up the first of each type.
type ProjectDocument struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	URL       string       `json:"url"`
	Type      DocumentType `json:"type"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Project is the central entity of the dashboard.
type Project struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	ClientID     string            `json:"client_id"`
	Description  string            `json:"description"`
	Status       ProjectStatus     `json:"status"`
	Responsavel  string            `json:"responsavel"`
	Departamento string            `json:"departamento"`
	Notes        string            `json:"notes"`
	PhotosBefore []ProjectImage    `json:"photos_before"`
	PhotosAfter  []ProjectImage    `json:"photos_after"`
	Documents    []ProjectDocument `json:"documents"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// DocumentByType returns the first document of the given type, mirroring the
// one-per-type assumption of the upload form.
func (p Project) DocumentByType(t DocumentType) (ProjectDocument, bool) {
	for _, d := range p.Documents {
		if d.Type == t {
			return d, true
		}
	}
	return ProjectDocument{}, false
}

// ProjectInput carries the fields for creating a project.
type ProjectInput struct {
	Name         string            `json:"name"`
	ClientID     string            `json:"client_id"`
	Description  string            `json:"description"`
	Status       ProjectStatus     `json:"status"`
	Responsavel  string            `json:"responsavel"`
	Departamento string            `json:"departamento"`
	Notes        string            `json:"notes"`
	PhotosBefore []ProjectImage    `json:"photos_before"`
	PhotosAfter  []ProjectImage    `json:"photos_after"`
	Documents    []ProjectDocument `json:"documents"`
}

// ProjectPatch is a partial update. Nil fields are left unchanged; slice
// fields replace the whole slice when present.
type ProjectPatch struct {
	Name         *string            `json:"name"`
	ClientID     *string            `json:"client_id"`
	Description  *string            `json:"description"`
	Status       *ProjectStatus     `json:"status"`
	Responsavel  *string            `json:"responsavel"`
	Departamento *string            `json:"departamento"`
	Notes        *string            `json:"notes"`
	PhotosBefore *[]ProjectImage    `json:"photos_before"`
	PhotosAfter  *[]ProjectImage    `json:"photos_after"`
	Documents    *[]ProjectDocument `json:"documents"`
}
