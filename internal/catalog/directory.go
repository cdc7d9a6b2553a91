package catalog

// Directory entry types mirror the marketplace's people and vendor
// listings. They carry JSON tags because the API serves them verbatim.

// Availability states for a labour profile.
const (
	Available   = "AVAILABLE"
	Busy        = "BUSY"
	Unavailable = "UNAVAILABLE"
)

// LabourProfile is one worker in the labour directory.
type LabourProfile struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Location        string   `json:"location"`
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experienceYears"`
	HourlyRate      float64  `json:"hourlyRate"`
	Availability    string   `json:"availability"`
	Rating          float64  `json:"rating,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	CompletedJobs   int      `json:"completedJobs,omitempty"`
}

// Record flattens the profile for the filter engine.
func (l LabourProfile) Record() Record {
	return Record{
		ID:       l.ID,
		Kind:     KindLabourer,
		Name:     l.Name,
		Location: l.Location,
		Tags:     l.Skills,
		Category: l.Availability,
		Attrs: map[Field]float64{
			FieldRate:       l.HourlyRate,
			FieldRating:     l.Rating,
			FieldExperience: float64(l.ExperienceYears),
		},
		Payload: l,
	}
}

// TractorVendor is one equipment vendor in the tractor directory.
type TractorVendor struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Location        string   `json:"location"`
	DistanceKm      float64  `json:"distanceKm"`
	FarePerHour     float64  `json:"farePerHour"`
	FarePerKm       float64  `json:"farePerKm"`
	Services        []string `json:"services"`
	Rating          float64  `json:"rating,omitempty"`
	TractorCount    int      `json:"tractorCount,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	YearsInBusiness int      `json:"yearsInBusiness,omitempty"`
}

// Record flattens the vendor for the filter engine.
func (v TractorVendor) Record() Record {
	return Record{
		ID:       v.ID,
		Kind:     KindTractor,
		Name:     v.Name,
		Location: v.Location,
		Tags:     v.Services,
		Attrs: map[Field]float64{
			FieldRate:       v.FarePerHour,
			FieldDistance:   v.DistanceKm,
			FieldRating:     v.Rating,
			FieldExperience: float64(v.YearsInBusiness),
		},
		Payload: v,
	}
}

// Coordinator is one labour coordinator (middleman) in the directory.
type Coordinator struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Location        string   `json:"location"`
	CoverageAreas   []string `json:"coverageAreas"`
	TotalLabours    int      `json:"totalLabours"`
	Phone           string   `json:"phone,omitempty"`
	Email           string   `json:"email,omitempty"`
	Rating          float64  `json:"rating,omitempty"`
	YearsInBusiness int      `json:"yearsInBusiness,omitempty"`
	Description     string   `json:"description,omitempty"`
}

// Record flattens the coordinator for the filter engine. Coverage areas
// become tags so location filters match them too.
func (c Coordinator) Record() Record {
	return Record{
		ID:          c.ID,
		Kind:        KindCoordinator,
		Name:        c.Name,
		Description: c.Description,
		Location:    c.Location,
		Tags:        c.CoverageAreas,
		Attrs: map[Field]float64{
			FieldRating:     c.Rating,
			FieldExperience: float64(c.YearsInBusiness),
		},
		Payload: c,
	}
}

// Records converts a slice of anything with a Record method.
func Records[T interface{ Record() Record }](items []T) []Record {
	out := make([]Record, len(items))
	for i, item := range items {
		out[i] = item.Record()
	}
	return out
}
