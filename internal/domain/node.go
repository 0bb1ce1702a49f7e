package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vertical identifies one clinical content area. Every vertical shares the
// same node schema; the engine is parameterized by this value instead of
// carrying one implementation per area.
type Vertical string

const (
	VerticalDiagnosis        Vertical = "diagnosis"
	VerticalDifferentialCare Vertical = "differential-care"
	VerticalADRGuidance      Vertical = "adr-guidance"
	VerticalTreatment        Vertical = "treatment"
	VerticalLatentTB         Vertical = "latent-tb"
	VerticalCGCIntervention  Vertical = "cgc-intervention"
)

var verticals = map[Vertical]bool{
	VerticalDiagnosis:        true,
	VerticalDifferentialCare: true,
	VerticalADRGuidance:      true,
	VerticalTreatment:        true,
	VerticalLatentTB:         true,
	VerticalCGCIntervention:  true,
}

func ParseVertical(s string) (Vertical, bool) {
	v := Vertical(s)
	return v, verticals[v]
}

func (v Vertical) String() string {
	return string(v)
}

// AlgorithmNode is one node of a decision tree. A node with a nil ParentID
// is a root ("master") node and the unit of notification targeting.
type AlgorithmNode struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Vertical     Vertical   `json:"vertical" db:"vertical"`
	ParentID     *uuid.UUID `json:"parent_id,omitempty" db:"parent_id"`
	MasterNodeID *uuid.UUID `json:"master_node_id,omitempty" db:"master_node_id"`

	Title       LocalizedText `json:"title" db:"title"`
	Description LocalizedText `json:"description,omitempty" db:"description"`

	NodeType     string  `json:"node_type" db:"node_type"`
	Icon         *string `json:"icon,omitempty" db:"icon"`
	Header       *string `json:"header,omitempty" db:"header"`
	SubHeader    *string `json:"sub_header,omitempty" db:"sub_header"`
	Index        int     `json:"index" db:"index"`
	IsExpandable bool    `json:"is_expandable" db:"is_expandable"`
	HasOptions   bool    `json:"has_options" db:"has_options"`
	TimeSpent    *int    `json:"time_spent,omitempty" db:"time_spent"`

	RedirectAlgoType *Vertical  `json:"redirect_algo_type,omitempty" db:"redirect_algo_type"`
	RedirectNodeID   *uuid.UUID `json:"redirect_node_id,omitempty" db:"redirect_node_id"`

	StateIDs   UUIDArray   `json:"state_ids" db:"state_ids"`
	IsAllState bool        `json:"is_all_state" db:"is_all_state"`
	CadreIDs   UUIDArray   `json:"cadre_ids" db:"cadre_ids"`
	IsAllCadre bool        `json:"is_all_cadre" db:"is_all_cadre"`
	CadreType  StringArray `json:"cadre_type" db:"cadre_type"`

	Activated               bool `json:"activated" db:"activated"`
	SendInitialNotification bool `json:"send_initial_notification" db:"send_initial_notification"`

	CreatedBy *uuid.UUID `json:"created_by,omitempty" db:"created_by"`
	UpdatedBy *uuid.UUID `json:"updated_by,omitempty" db:"updated_by"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

func (n *AlgorithmNode) IsRoot() bool {
	return n.ParentID == nil
}

// EnglishTitle is the fallback source of truth for notification text.
func (n *AlgorithmNode) EnglishTitle() string {
	if n.Title == nil {
		return ""
	}
	return n.Title[FallbackLang]
}

type CreateNodeInput struct {
	ParentID     *uuid.UUID    `json:"parent_id"`
	MasterNodeID *uuid.UUID    `json:"master_node_id"`
	Title        LocalizedText `json:"title"`
	Description  LocalizedText `json:"description"`
	NodeType     string        `json:"node_type"`
	Icon         *string       `json:"icon"`
	Header       *string       `json:"header"`
	SubHeader    *string       `json:"sub_header"`
	Index        int           `json:"index"`
	IsExpandable bool          `json:"is_expandable"`
	HasOptions   bool          `json:"has_options"`
	TimeSpent    *int          `json:"time_spent"`

	RedirectAlgoType *Vertical  `json:"redirect_algo_type"`
	RedirectNodeID   *uuid.UUID `json:"redirect_node_id"`

	StateIDs   []uuid.UUID `json:"state_ids"`
	IsAllState bool        `json:"is_all_state"`
	CadreIDs   []uuid.UUID `json:"cadre_ids"`
	IsAllCadre bool        `json:"is_all_cadre"`
	CadreType  []string    `json:"cadre_type"`

	Activated bool `json:"activated"`
}

type UpdateNodeInput struct {
	Title        LocalizedText  `json:"title"`
	Description  LocalizedText  `json:"description"`
	NodeType     *string        `json:"node_type"`
	Icon         NullableString `json:"icon"`
	Header       NullableString `json:"header"`
	SubHeader    NullableString `json:"sub_header"`
	Index        *int           `json:"index"`
	IsExpandable *bool          `json:"is_expandable"`
	HasOptions   *bool          `json:"has_options"`
	TimeSpent    *int           `json:"time_spent"`

	RedirectAlgoType *Vertical  `json:"redirect_algo_type"`
	RedirectNodeID   *uuid.UUID `json:"redirect_node_id"`

	StateIDs   []uuid.UUID `json:"state_ids"`
	IsAllState *bool       `json:"is_all_state"`
	CadreIDs   []uuid.UUID `json:"cadre_ids"`
	IsAllCadre *bool       `json:"is_all_cadre"`
	CadreType  []string    `json:"cadre_type"`

	Activated *bool `json:"activated"`
}
