package catalog

// Built-in directory catalogs. The labour, tractor, and coordinator
// directories ship with seed listings so a fresh install has something to
// search; a deployment wired to a live roster can swap the Source out
// without the filter engine noticing.

// FixtureLabour returns the seed labour directory.
func FixtureLabour() []LabourProfile {
	return []LabourProfile{
		{ID: 1, Name: "Ravi Kumar", Location: "Telangana, IN", Skills: []string{"Harvesting", "Irrigation"}, ExperienceYears: 4, HourlyRate: 8, Availability: Available, Rating: 4.8, Phone: "+91-9876543210", CompletedJobs: 45},
		{ID: 2, Name: "Asha Devi", Location: "Punjab, IN", Skills: []string{"Planting", "Greenhouse"}, ExperienceYears: 3, HourlyRate: 7, Availability: Available, Rating: 4.6, Phone: "+91-9876543211", CompletedJobs: 32},
		{ID: 3, Name: "Carlos Diaz", Location: "Iowa, US", Skills: []string{"Tractor Operation", "Harvesting"}, ExperienceYears: 6, HourlyRate: 15, Availability: Busy, Rating: 4.9, Phone: "+1-5551234567", CompletedJobs: 78},
		{ID: 4, Name: "Priya Singh", Location: "Gujarat, IN", Skills: []string{"Weeding", "Sorting", "Packaging"}, ExperienceYears: 2, HourlyRate: 6, Availability: Available, Rating: 4.5, Phone: "+91-9876543212", CompletedJobs: 28},
		{ID: 5, Name: "Marcus Johnson", Location: "California, US", Skills: []string{"Crop Management", "Harvesting"}, ExperienceYears: 8, HourlyRate: 18, Availability: Available, Rating: 5.0, Phone: "+1-5551234568", CompletedJobs: 92},
		{ID: 6, Name: "Fatima Khan", Location: "Maharashtra, IN", Skills: []string{"Irrigation", "Maintenance", "Technical"}, ExperienceYears: 5, HourlyRate: 10, Availability: Unavailable, Rating: 4.7, Phone: "+91-9876543213", CompletedJobs: 61},
	}
}

// FixtureTractors returns the seed tractor vendor directory.
func FixtureTractors() []TractorVendor {
	return []TractorVendor{
		{ID: 1, Name: "Kisan Tractors", Location: "Warangal, IN", DistanceKm: 12, FarePerHour: 15, FarePerKm: 0.8, Services: []string{"Tilling", "Transport", "Ploughing"}, Rating: 4.6, TractorCount: 15, Phone: "+91-9876543210", YearsInBusiness: 4},
		{ID: 2, Name: "AgriMove", Location: "Hyderabad, IN", DistanceKm: 28, FarePerHour: 18, FarePerKm: 1.0, Services: []string{"Harvest Transport", "Bulk Material Transport"}, Rating: 4.4, TractorCount: 22, Phone: "+91-9876543211", YearsInBusiness: 5},
		{ID: 3, Name: "FieldForce", Location: "Des Moines, US", DistanceKm: 6, FarePerHour: 20, FarePerKm: 0.9, Services: []string{"Tilling", "Ploughing", "Transport", "Grading"}, Rating: 4.9, TractorCount: 35, Phone: "+1-5551234567", YearsInBusiness: 8},
		{ID: 4, Name: "GreenFields Rentals", Location: "Punjab, IN", DistanceKm: 18, FarePerHour: 17, FarePerKm: 0.85, Services: []string{"Tilling", "Sowing", "Harvesting Support"}, Rating: 4.7, TractorCount: 28, Phone: "+91-9876543212", YearsInBusiness: 6},
		{ID: 5, Name: "QuickTractor", Location: "California, US", DistanceKm: 3, FarePerHour: 22, FarePerKm: 1.1, Services: []string{"Emergency Transport", "Tilling", "Professional Operators"}, Rating: 4.8, TractorCount: 42, Phone: "+1-5551234568", YearsInBusiness: 7},
	}
}

// FixtureCoordinators returns the seed coordinator (middlemen) directory.
func FixtureCoordinators() []Coordinator {
	return []Coordinator{
		{ID: 1, Name: "GreenBridge Associates", Location: "Andhra Pradesh, IN", CoverageAreas: []string{"Vijayawada", "Guntur", "Visakhapatnam"}, TotalLabours: 120, Phone: "+91-90000-12345", Email: "contact@greenbridge.com", Rating: 4.7, YearsInBusiness: 5, Description: "Leading labour coordinator serving agricultural sector with 120+ verified workers."},
		{ID: 2, Name: "Harvest Hub", Location: "Maharashtra, IN", CoverageAreas: []string{"Pune", "Nashik", "Aurangabad", "Solapur"}, TotalLabours: 75, Phone: "+91-98888-55667", Email: "info@harvesthub.com", Rating: 4.5, YearsInBusiness: 4, Description: "Specialized in seasonal agricultural workforce management and placement."},
		{ID: 3, Name: "AgriLink Co-ordinators", Location: "Texas, US", CoverageAreas: []string{"Dallas", "Austin", "Houston", "San Antonio"}, TotalLabours: 90, Phone: "+1-555-142-7788", Email: "support@agrilink.com", Rating: 4.8, YearsInBusiness: 7, Description: "Premium labour coordination for large-scale farming operations."},
		{ID: 4, Name: "FarmForce Managers", Location: "Punjab, IN", CoverageAreas: []string{"Chandigarh", "Mohali", "Ludhiana", "Amritsar"}, TotalLabours: 110, Phone: "+91-95555-67890", Email: "admin@farmforce.com", Rating: 4.6, YearsInBusiness: 6, Description: "Expert in mobilizing trained agricultural workforce for diverse tasks."},
		{ID: 5, Name: "CropCrew Solutions", Location: "California, US", CoverageAreas: []string{"San Francisco", "Los Angeles", "San Diego", "Sacramento"}, TotalLabours: 200, Phone: "+1-555-987-6543", Email: "hello@cropcrew.com", Rating: 4.9, YearsInBusiness: 8, Description: "Largest farm labour network on West Coast with cutting-edge matching technology."},
	}
}
