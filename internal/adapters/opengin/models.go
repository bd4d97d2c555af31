package opengin

// Wire types for the upstream entity/relation graph store
// Field names must match the upstream JSON contract exactly

// Kind is the two level type tag classifying an entity
type Kind struct {
	Major string `json:"major,omitempty"`
	Minor string `json:"minor,omitempty"`
}

// Entity is a node in the upstream graph. Name is an opaque encoded blob
// that requires the namecodec to produce a display string
type Entity struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name,omitempty"`
	Kind       Kind   `json:"kind,omitempty"`
	Created    string `json:"created,omitempty"`
	Terminated string `json:"terminated,omitempty"`
}

// Relation is a directed, time scoped edge between two entities
// An empty EndTime means the relation is ongoing
type Relation struct {
	ID              string `json:"id,omitempty"`
	Name            string `json:"name,omitempty"`
	ActiveAt        string `json:"activeAt,omitempty"`
	StartTime       string `json:"startTime,omitempty"`
	EndTime         string `json:"endTime,omitempty"`
	RelatedEntityID string `json:"relatedEntityId,omitempty"`
	Direction       string `json:"direction,omitempty"`
}

// Relation directions
const (
	DirectionIncoming = "INCOMING"
	DirectionOutgoing = "OUTGOING"
)

// Edge type names used by the aggregators
const (
	RelAsCategory      = "AS_CATEGORY"
	RelIsAttribute     = "IS_ATTRIBUTE"
	RelAsMinister      = "AS_MINISTER"
	RelAsAppointed     = "AS_APPOINTED"
	RelAsDepartment    = "AS_DEPARTMENT"
	RelAsPresident     = "AS_PRESIDENT"
	RelAsPrimeMinister = "AS_PRIME_MINISTER"
)

// Entity kinds relevant to traversal termination and search
const (
	KindMajorOrganisation = "Organisation"
	KindMajorPerson       = "Person"
	KindMajorData         = "Data"
	KindMajorCategory     = "Category"

	KindMinorDepartment      = "department"
	KindMinorMinister        = "minister"
	KindMinorStateMinister   = "stateMinister"
	KindMinorCabinetMinister = "cabinetMinister"
	KindMinorDataset         = "dataset"
	KindMinorPerson          = "person"
	KindMinorParentCategory  = "parentCategory"
	KindMinorCategory        = "category"
)

// IsRootKind reports whether an entity terminates the upward category walk
func (e Entity) IsRootKind() bool {
	return e.Kind.Minor == KindMinorDepartment || e.Kind.Minor == KindMinorMinister
}

// EntityFilter is a partial Entity used as a search body
type EntityFilter struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name,omitempty"`
	Kind       *Kind  `json:"kind,omitempty"`
	Created    string `json:"created,omitempty"`
	Terminated string `json:"terminated,omitempty"`
}

// RelationFilter is a partial Relation used as a relations body
type RelationFilter struct {
	Name      string `json:"name,omitempty"`
	ActiveAt  string `json:"activeAt,omitempty"`
	Direction string `json:"direction,omitempty"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

// searchEnvelope wraps entity search responses
// relations come back as a bare array with no wrapper
type searchEnvelope struct {
	Body []Entity `json:"body"`
}
