package sdg

// Seed reference data. The dashboard must stay interactive with the upstream
// API unreachable, so the full reference taxonomy and a representative
// activity set ship with the binary.

var seedGoals = []Goal{
	{ID: 1, Code: "SDG 1", Title: "No Poverty", Color: "#E5243B", Description: "End poverty in all its forms everywhere"},
	{ID: 2, Code: "SDG 2", Title: "Zero Hunger", Color: "#DDA63A", Description: "End hunger, achieve food security and improved nutrition and promote sustainable agriculture"},
	{ID: 3, Code: "SDG 3", Title: "Good Health and Well-being", Color: "#4C9F38", Description: "Ensure healthy lives and promote well-being for all at all ages"},
	{ID: 4, Code: "SDG 4", Title: "Quality Education", Color: "#C5192D", Description: "Ensure inclusive and equitable quality education and promote lifelong learning opportunities for all"},
	{ID: 5, Code: "SDG 5", Title: "Gender Equality", Color: "#FF3A21", Description: "Achieve gender equality and empower all women and girls"},
	{ID: 6, Code: "SDG 6", Title: "Clean Water and Sanitation", Color: "#26BDE2", Description: "Ensure availability and sustainable management of water and sanitation for all"},
	{ID: 7, Code: "SDG 7", Title: "Affordable and Clean Energy", Color: "#FCC30B", Description: "Ensure access to affordable, reliable, sustainable and modern energy for all"},
	{ID: 8, Code: "SDG 8", Title: "Decent Work and Economic Growth", Color: "#A21942", Description: "Promote sustained, inclusive and sustainable economic growth, full and productive employment and decent work for all"},
	{ID: 9, Code: "SDG 9", Title: "Industry, Innovation and Infrastructure", Color: "#FD6925", Description: "Build resilient infrastructure, promote inclusive and sustainable industrialization and foster innovation"},
	{ID: 10, Code: "SDG 10", Title: "Reduced Inequalities", Color: "#DD1367", Description: "Reduce inequality within and among countries"},
	{ID: 11, Code: "SDG 11", Title: "Sustainable Cities and Communities", Color: "#FD9D24", Description: "Make cities and human settlements inclusive, safe, resilient and sustainable"},
	{ID: 12, Code: "SDG 12", Title: "Responsible Consumption and Production", Color: "#BF8B2E", Description: "Ensure sustainable consumption and production patterns"},
	{ID: 13, Code: "SDG 13", Title: "Climate Action", Color: "#3F7E44", Description: "Take urgent action to combat climate change and its impacts"},
	{ID: 14, Code: "SDG 14", Title: "Life Below Water", Color: "#0A97D9", Description: "Conserve and sustainably use the oceans, seas and marine resources for sustainable development"},
	{ID: 15, Code: "SDG 15", Title: "Life on Land", Color: "#56C02B", Description: "Protect, restore and promote sustainable use of terrestrial ecosystems, sustainably manage forests, combat desertification"},
	{ID: 16, Code: "SDG 16", Title: "Peace, Justice and Strong Institutions", Color: "#00689D", Description: "Promote peaceful and inclusive societies for sustainable development, provide access to justice for all"},
	{ID: 17, Code: "SDG 17", Title: "Partnerships for the Goals", Color: "#19486A", Description: "Strengthen the means of implementation and revitalize the global partnership for sustainable development"},
}

var seedDepartments = []Department{
	{ID: "dept-1", Name: "School of Business and Economics"},
	{ID: "dept-2", Name: "School of Applied Human Sciences"},
	{ID: "dept-3", Name: "School of Science, Engineering and Health"},
	{ID: "dept-4", Name: "School of Communication, Language and Performing Arts"},
	{ID: "dept-5", Name: "Education"},
	{ID: "dept-6", Name: "Public Health"},
	{ID: "dept-7", Name: "Engineering"},
	{ID: "dept-8", Name: "Civic Engagement"},
	{ID: "dept-9", Name: "External Relations"},
	{ID: "dept-10", Name: "Sustainability"},
	{ID: "dept-11", Name: "IT & Innovation"},
	{ID: "dept-12", Name: "Urban Development"},
	{ID: "dept-13", Name: "Agriculture"},
}

var seedResearchers = []Researcher{
	{ID: "res-1", Name: "Dr. Amina Owino", DepartmentID: "dept-1"},
	{ID: "res-2", Name: "Prof. Daniel Mwangi", DepartmentID: "dept-3"},
	{ID: "res-3", Name: "Dr. Faith Wambui", DepartmentID: "dept-2"},
	{ID: "res-4", Name: "Dr. John Muriuki", DepartmentID: "dept-3"},
	{ID: "res-5", Name: "Prof. Sheila Njeri", DepartmentID: "dept-4"},
	{ID: "res-6", Name: "Dr. Grace Kimani", DepartmentID: "dept-6"},
	{ID: "res-7", Name: "Prof. James Ochieng", DepartmentID: "dept-7"},
	{ID: "res-8", Name: "Dr. Mary Wanjiku", DepartmentID: "dept-5"},
}

var seedActivities = []Activity{
	{
		ID: "P-001", Title: "Community Literacy Program", Kind: KindProject, Status: "Active",
		Goals: []int{4, 10}, Date: "2025-09-12", DepartmentID: "dept-5", Impact: 68,
		Description:   "A community-based literacy program targeting underserved populations.",
		ResearcherIDs: []string{"res-8"},
	},
	{
		ID: "P-002", Title: "Maternal Health Outreach", Kind: KindProject, Status: "Active",
		Goals: []int{3, 5}, Date: "2025-07-01", DepartmentID: "dept-6", Impact: 54,
		Description:   "Outreach program improving maternal health outcomes in rural areas.",
		ResearcherIDs: []string{"res-6"},
	},
	{
		ID: "P-003", Title: "Green Tech Incubator", Kind: KindProject, Status: "Planned",
		Goals: []int{7, 9, 12}, Date: "2026-02-15", DepartmentID: "dept-7", Impact: 12,
		Description:   "Incubator for green technology startups focusing on sustainable solutions.",
		ResearcherIDs: []string{"res-7", "res-2"},
	},
	{
		ID: "P-004", Title: "Justice Awareness Campaign", Kind: KindProject, Status: "Completed",
		Goals: []int{16}, Date: "2025-03-10", DepartmentID: "dept-8", Impact: 100,
		Description:   "Campaign raising awareness about justice and legal rights.",
		ResearcherIDs: []string{"res-3"},
	},
	{
		ID: "P-005", Title: "Partnership Network Expansion", Kind: KindProject, Status: "Active",
		Goals: []int{17, 8}, Date: "2025-11-05", DepartmentID: "dept-9", Impact: 35,
		Description:   "Expanding partnerships with international organizations for SDG collaboration.",
		ResearcherIDs: []string{"res-1"},
	},
	{
		ID: "P-006", Title: "Rural Water Access", Kind: KindProject, Status: "Active",
		Goals: []int{6, 11}, Date: "2025-04-22", DepartmentID: "dept-10", Impact: 72,
		Description:   "Project providing clean water access to rural communities.",
		ResearcherIDs: []string{"res-4"},
	},
	{
		ID: "P-007", Title: "Youth Skills Bootcamp", Kind: KindProject, Status: "Active",
		Goals: []int{4, 8}, Date: "2025-05-14", DepartmentID: "dept-5", Impact: 59,
		Description:   "Skills training bootcamp for youth employment readiness.",
		ResearcherIDs: []string{"res-8", "res-5"},
	},
	{
		ID: "P-008", Title: "Waste-to-Energy Pilot", Kind: KindProject, Status: "Planned",
		Goals: []int{7, 12, 13}, Date: "2026-01-30", DepartmentID: "dept-7", Impact: 20,
		Description:   "Pilot program converting waste to renewable energy.",
		ResearcherIDs: []string{"res-7"},
	},
	{
		ID: "P-009", Title: "Affordable Housing Initiative", Kind: KindProject, Status: "Active",
		Goals: []int{1, 11}, Date: "2025-08-18", DepartmentID: "dept-12", Impact: 47,
		Description:   "Initiative providing affordable housing solutions.",
		ResearcherIDs: []string{"res-2"},
	},
	{
		ID: "P-010", Title: "Climate Resilience Program", Kind: KindProject, Status: "Active",
		Goals: []int{13, 15}, Date: "2025-06-09", DepartmentID: "dept-10", Impact: 63,
		Description:   "Program building climate resilience in vulnerable communities.",
		ResearcherIDs: []string{"res-4", "res-6"},
	},
	{
		ID: "P-011", Title: "Digital Inclusion Labs", Kind: KindProject, Status: "Active",
		Goals: []int{9, 10}, Date: "2025-10-21", DepartmentID: "dept-11", Impact: 41,
		Description:   "Labs promoting digital inclusion and tech literacy.",
		ResearcherIDs: []string{"res-5"},
	},
	{
		ID: "P-012", Title: "Food Security Gardens", Kind: KindProject, Status: "Completed",
		Goals: []int{2, 12}, Date: "2025-01-28", DepartmentID: "dept-13", Impact: 95,
		Description:   "Community gardens improving food security.",
		ResearcherIDs: []string{"res-3", "res-1"},
	},
	{
		ID: "PUB-001", Title: "Assessing Literacy Interventions", Kind: KindPublication, Status: "Published",
		Goals: []int{4}, Date: "2025-05-01", DepartmentID: "dept-5", Impact: 78,
		Description:   "Research article assessing the effectiveness of literacy interventions.",
		ResearcherIDs: []string{"res-8"},
	},
	{
		ID: "PUB-002", Title: "Maternal Health Outcomes 2025", Kind: KindPublication, Status: "Published",
		Goals: []int{3, 5}, Date: "2025-09-20", DepartmentID: "dept-6", Impact: 66,
		Description:   "Comprehensive report on maternal health outcomes.",
		ResearcherIDs: []string{"res-6"},
	},
	{
		ID: "PUB-003", Title: "Green Incubation Models", Kind: KindPublication, Status: "In Review",
		Goals: []int{7, 9, 12}, Date: "2026-01-10", DepartmentID: "dept-7", Impact: 45,
		Description:   "Paper on green incubation models for sustainable startups.",
		ResearcherIDs: []string{"res-7", "res-2"},
	},
	{
		ID: "PUB-004", Title: "Justice Systems and SDG 16", Kind: KindPublication, Status: "Published",
		Goals: []int{16}, Date: "2025-03-29", DepartmentID: "dept-8", Impact: 84,
		Description:   "Analysis of justice systems in relation to SDG 16.",
		ResearcherIDs: []string{"res-3"},
	},
	{
		ID: "PUB-005", Title: "Public-Private Partnerships for SDGs", Kind: KindPublication, Status: "Draft",
		Goals: []int{17}, Date: "2026-02-01", DepartmentID: "dept-9", Impact: 20,
		Description:   "Whitepaper on public-private partnerships for SDG implementation.",
		ResearcherIDs: []string{"res-1"},
	},
	{
		ID: "PUB-006", Title: "Water Access and Health", Kind: KindPublication, Status: "Published",
		Goals: []int{3, 6}, Date: "2025-11-11", DepartmentID: "dept-10", Impact: 71,
		Description:   "Study on the relationship between water access and health outcomes.",
		ResearcherIDs: []string{"res-4", "res-6"},
	},
	{
		ID: "PUB-007", Title: "Skills Programs Impact", Kind: KindPublication, Status: "Published",
		Goals: []int{4, 8}, Date: "2025-08-03", DepartmentID: "dept-5", Impact: 58,
		Description:   "Impact assessment of skills development programs.",
		ResearcherIDs: []string{"res-8", "res-5"},
	},
	{
		ID: "PUB-008", Title: "Urban Housing Affordability", Kind: KindPublication, Status: "In Review",
		Goals: []int{1, 11}, Date: "2026-01-05", DepartmentID: "dept-12", Impact: 36,
		Description:   "Book chapter on urban housing affordability challenges.",
		ResearcherIDs: []string{"res-2"},
	},
}

// Placeholder institution-wide figures reported alongside computed totals
// until the upstream reporting service provides real ones.
const (
	seedImpactScore    = 85
	seedCommunityReach = 1575
)
