package graph

import "fmt"

// ---------------------------------------------------------------------------
// Tier 2 — Geometric validation (errors + warnings)
// ---------------------------------------------------------------------------

// validateGeometry runs all Tier 2 geometric checks.
// Returns errors (blocking) and warnings (advisory) separately.
func validateGeometry(g *DesignGraph) ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError
	var warnings []ValidationWarning

	errs = append(errs, validateNonZeroDimensions(g)...)
	errs = append(errs, validateTessellationDivisions(g)...)
	warnings = append(warnings, validateDegenerateComplement(g)...)

	return errs, warnings
}

// validateNonZeroDimensions checks that every primitive has positive
// extents.
func validateNonZeroDimensions(g *DesignGraph) []ValidationError {
	var errs []ValidationError

	for _, node := range g.Nodes {
		switch d := node.Data.(type) {
		case CuboidData:
			if d.Radius.X <= 0 || d.Radius.Y <= 0 || d.Radius.Z <= 0 {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("cuboid radius %v must be positive on every axis", d.Radius),
					Severity: SeverityError,
				})
			}
		case SphereData:
			if d.Radius <= 0 {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("sphere radius %.4f must be positive", d.Radius),
					Severity: SeverityError,
				})
			}
		case CylinderData:
			if d.Radius <= 0 {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("cylinder radius %.4f must be positive", d.Radius),
					Severity: SeverityError,
				})
			}
			if d.Start == d.End {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  "cylinder start and end coincide, axis has zero length",
					Severity: SeverityError,
				})
			}
		}
	}

	return errs
}

// validateTessellationDivisions checks that sphere and cylinder division
// counts are large enough to produce a non-degenerate mesh, matching the
// minimums pkg/csg/primitives enforces.
func validateTessellationDivisions(g *DesignGraph) []ValidationError {
	var errs []ValidationError

	for _, node := range g.Nodes {
		switch d := node.Data.(type) {
		case SphereData:
			if d.Slices < 2 || d.Stacks < 2 {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("sphere requires slices >= 2 and stacks >= 2, got slices=%d stacks=%d", d.Slices, d.Stacks),
					Severity: SeverityError,
				})
			}
		case CylinderData:
			if d.Slices < 3 {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("cylinder requires slices >= 3, got %d", d.Slices),
					Severity: SeverityError,
				})
			}
		}
	}

	return errs
}

// validateDegenerateComplement warns when a complement node is itself one
// of the graph's roots. An unbounded complement solid tessellates to
// nothing useful on its own; it is only meaningful as an operand of an
// intersection or difference. Complements nested below a root are not
// checked. The finding is advisory rather than blocking.
func validateDegenerateComplement(g *DesignGraph) []ValidationWarning {
	var warnings []ValidationWarning

	rootSet := make(map[NodeID]bool, len(g.Roots))
	for _, id := range g.Roots {
		rootSet[id] = true
	}

	for _, node := range g.Nodes {
		bd, ok := node.Data.(BooleanData)
		if !ok || bd.Op != OpComplement {
			continue
		}
		if rootSet[node.ID] {
			warnings = append(warnings, ValidationWarning{
				NodeID:  node.ID,
				Message: "complement used directly as a design root produces an unbounded solid; intersect it with a bounding volume before tessellating",
			})
		}
	}

	return warnings
}
