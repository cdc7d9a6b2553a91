// Package catalog implements the search model shared by every directory in
// the marketplace: a flat record shape, a composed filter predicate, a
// stable sort comparator, and the grid/table result projection.
//
// The engine is written once and specialized per record kind through the
// accessor tables in this file, so the task board, labour directory,
// tractor directory, coordinator directory, and announcement feed all run
// through the same code path.
package catalog

// Kind tags which directory a Record belongs to.
type Kind string

const (
	KindTask         Kind = "task"
	KindLabourer     Kind = "labourer"
	KindTractor      Kind = "tractor"
	KindCoordinator  Kind = "coordinator"
	KindAnnouncement Kind = "announcement"
)

// Field names a numeric attribute on a Record.
type Field string

const (
	FieldRate       Field = "rate"       // hourly rate / fare per hour
	FieldDistance   Field = "distance"   // km from the searcher
	FieldRating     Field = "rating"     // 0..5
	FieldHours      Field = "hours"      // estimated task hours
	FieldExperience Field = "experience" // years
)

// Record is the shared shape every directory entry reduces to before
// filtering. Domain types (tasks, labour profiles, vendors, coordinators,
// announcements) convert into it; Payload keeps the original value for the
// presentation layer.
type Record struct {
	ID          int64
	Kind        Kind
	Name        string
	Description string
	Location    string
	Tags        []string // skills, services or coverage areas
	Category    string   // task type, availability status or announcement category
	Attrs       map[Field]float64
	Payload     any
}

// Attr returns the named numeric attribute. A missing attribute reads as 0,
// which means records with an unknown rate are excluded by any positive
// minimum-rate bound. That matches the shipped behaviour and stays until
// product says otherwise.
func (r Record) Attr(f Field) float64 {
	return r.Attrs[f]
}

// queryText returns the haystack a free-text query is matched against.
// Tasks and announcements search their body text too; the people and
// vendor directories match on name alone.
func queryText(r Record) string {
	switch r.Kind {
	case KindTask, KindAnnouncement:
		return r.Name + " " + r.Description
	default:
		return r.Name
	}
}

// locationText returns the haystack a location filter is matched against.
// Coordinators cover multiple areas, so their coverage tags count as
// location text as well.
func locationText(r Record) string {
	if r.Kind == KindCoordinator {
		return r.Location + " " + joinTags(r.Tags)
	}
	return r.Location
}

func joinTags(tags []string) string {
	out := ""
	for i, t := range tags {
		if i > 0 {
			out += " "
		}
		out += t
	}
	return out
}
