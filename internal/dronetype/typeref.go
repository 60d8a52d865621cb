package dronetype

import (
	"fmt"
	"strings"

	"droneops/internal/common"
	"droneops/internal/template"

	"github.com/google/uuid"
)

// Kind tags the two drone-type variants.
type Kind string

const (
	KindFPV     Kind = "fpv"
	KindOptical Kind = "optical"
)

// TypeRef is the tagged polymorphic reference stored on a UAV instance.
// The wire format is "<kind>-<uuid>", e.g. "fpv-8f14…".
type TypeRef struct {
	Kind Kind      `json:"kind"`
	ID   uuid.UUID `json:"id"`
}

func (r TypeRef) String() string {
	return fmt.Sprintf("%s-%s", r.Kind, r.ID)
}

// ParseTypeRef parses the "<kind>-<uuid>" form. Unknown kinds and malformed
// ids are validation errors.
func ParseTypeRef(s string) (TypeRef, error) {
	kind, idPart, ok := strings.Cut(s, "-")
	if !ok {
		return TypeRef{}, common.NewValidationError("invalid drone type reference %q", s)
	}
	if Kind(kind) != KindFPV && Kind(kind) != KindOptical {
		return TypeRef{}, common.NewValidationError("unknown drone type kind %q", kind)
	}
	id, err := uuid.Parse(idPart)
	if err != nil {
		return TypeRef{}, common.NewValidationError("invalid drone type reference %q", s)
	}
	return TypeRef{Kind: Kind(kind), ID: id}, nil
}

// TypeView is the common projection of both drone-type variants. Code that
// needs "the drone type" of a UAV works with this view instead of dispatching
// on concrete tables.
type TypeView struct {
	Kind            Kind                    `json:"kind"`
	ID              uuid.UUID               `json:"id"`
	Label           string                  `json:"label"`
	ModelID         uuid.UUID               `json:"model_id"`
	PowerTemplateID uuid.UUID               `json:"power_template_id"`
	VideoTemplate   *template.VideoTemplate `json:"video_template,omitempty"` // optical only
	HasThermal      bool                    `json:"has_thermal"`
}

// NeedsSpool reports whether a complete kit for this type includes a
// fiber-optic spool.
func (v TypeView) NeedsSpool() bool {
	return v.Kind == KindOptical
}
