package detector

// Category identifies one detectable content category.
type Category string

// Detectable content categories.
const (
	CategoryVehicles    Category = "vehicles"
	CategoryTechSpecs   Category = "tech_specs"
	CategoryArticles    Category = "articles"
	CategoryProducts    Category = "products"
	CategoryComments    Category = "comments"
	CategoryReviews     Category = "reviews"
	CategoryEvents      Category = "events"
	CategoryJobs        Category = "jobs"
	CategoryCourses     Category = "courses"
	CategoryRecipes     Category = "recipes"
	CategoryRealEstate  Category = "real_estate"
	CategoryMedia       Category = "media"
	CategoryTables      Category = "tables"
	CategoryForms       Category = "forms"
	CategoryProfiles    Category = "profiles"
	CategoryFAQ         Category = "faq"
	CategoryNavigation  Category = "navigation"
	CategoryContacts    Category = "contacts"
	CategorySocial      Category = "social"
	CategoryPagination  Category = "pagination"
	CategoryTextContent Category = "text_content"
)

// categorySpec describes how one category is matched and which field
// names are probed for evidence.
type categorySpec struct {
	Type        Category
	Name        string
	Icon        string
	Description string
	Selectors   []string
	Required    []string
	Optional    []string
}

// categorySpecs is the full detection table, checked in order. The
// order only matters for deterministic tie-breaking; ranking is by
// confidence.
var categorySpecs = []categorySpec{
	{
		Type:        CategoryVehicles,
		Name:        "Vehicles & Auto",
		Icon:        "directions_car",
		Description: "Cars, specifications, models",
		Selectors:   []string{".vehicle", ".car", `[itemtype*="Vehicle"]`, `[itemtype*="Car"]`, ".model", ".trim", ".inventory-item"},
		Required:    []string{"model"},
		Optional:    []string{"price", "range", "acceleration", "speed", "specs", "features"},
	},
	{
		Type:        CategoryTechSpecs,
		Name:        "Technical Specifications",
		Icon:        "memory",
		Description: "Detailed technical characteristics",
		Selectors:   []string{".specs", ".specifications", ".features", ".tech-specs", ".parameters"},
		Required:    []string{"specs"},
		Optional:    []string{"dimensions", "weight", "performance", "battery", "display"},
	},
	{
		Type:        CategoryArticles,
		Name:        "Blog/News Articles",
		Icon:        "article",
		Description: "Articles, blog posts, news items",
		Selectors:   []string{"article", ".post", ".article", ".blog-post", ".news-item", `[itemtype*="Article"]`},
		Required:    []string{"title", "content"},
		Optional:    []string{"author", "date", "category", "tags", "image"},
	},
	{
		Type:        CategoryProducts,
		Name:        "E-commerce Products",
		Icon:        "shopping_bag",
		Description: "Products with prices, descriptions, images",
		Selectors:   []string{".product", ".item", `[itemtype*="Product"]`, ".product-card", ".product-item", ".card", ".listing-item"},
		// The name often hides inside a link; price is the strong marker.
		Required: []string{"price"},
		Optional: []string{"description", "image", "sku", "rating", "reviews", "stock", "name"},
	},
	{
		Type:        CategoryComments,
		Name:        "Comments",
		Icon:        "comment",
		Description: "Comments, opinions, discussions",
		Selectors:   []string{".comment", ".review", `[class*="comment"]`, "#comments", ".discussion"},
		Required:    []string{"author", "text"},
		Optional:    []string{"date", "rating", "likes", "replies"},
	},
	{
		Type:        CategoryReviews,
		Name:        "Reviews/Ratings",
		Icon:        "star",
		Description: "Customer reviews, ratings, testimonials",
		Selectors:   []string{".review", `[itemtype*="Review"]`, ".rating", ".testimonial"},
		Required:    []string{"rating", "text"},
		Optional:    []string{"author", "date", "verified", "helpful"},
	},
	{
		Type:        CategoryEvents,
		Name:        "Events",
		Icon:        "event",
		Description: "Events, dates, calendars",
		Selectors:   []string{".event", `[itemtype*="Event"]`, ".calendar-item", ".schedule"},
		Required:    []string{"name", "date"},
		Optional:    []string{"location", "description", "time", "price"},
	},
	{
		Type:        CategoryJobs,
		Name:        "Job Listings",
		Icon:        "work",
		Description: "Job offers, positions, careers",
		Selectors:   []string{".job", ".job-listing", `[itemtype*="JobPosting"]`, ".career"},
		Required:    []string{"title", "company"},
		Optional:    []string{"location", "salary", "description", "requirements"},
	},
	{
		Type:        CategoryCourses,
		Name:        "Courses/Training",
		Icon:        "school",
		Description: "Courses, training, educational programs",
		Selectors:   []string{".course", ".program", `[itemtype*="Course"]`, ".formation", ".training"},
		Required:    []string{"name"},
		Optional:    []string{"description", "duration", "instructor", "price", "level"},
	},
	{
		Type:        CategoryRecipes,
		Name:        "Recipes",
		Icon:        "restaurant",
		Description: "Cooking recipes",
		Selectors:   []string{".recipe", `[itemtype*="Recipe"]`, ".recette"},
		Required:    []string{"name", "ingredients"},
		Optional:    []string{"instructions", "time", "servings", "image", "rating"},
	},
	{
		Type:        CategoryRealEstate,
		Name:        "Real Estate Listings",
		Icon:        "home",
		Description: "Houses, apartments, land",
		Selectors:   []string{".property", ".listing", `[itemtype*="RealEstateListing"]`, ".annonce"},
		Required:    []string{"title", "price"},
		Optional:    []string{"location", "surface", "rooms", "description", "images"},
	},
	{
		Type:        CategoryMedia,
		Name:        "Images & Media",
		Icon:        "photo_library",
		Description: "Images, videos, media",
		Selectors:   []string{".gallery", ".image", "img", "video", ".media"},
		Required:    []string{"src"},
		Optional:    []string{"alt", "caption", "title", "dimensions"},
	},
	{
		Type:        CategoryTables,
		Name:        "Data Tables",
		Icon:        "table_chart",
		Description: "Structured tables with data",
		Selectors:   []string{"table", ".data-table", ".grid"},
		Required:    []string{"headers", "rows"},
		Optional:    []string{},
	},
	{
		Type:        CategoryForms,
		Name:        "Forms",
		Icon:        "description",
		Description: "Contact and signup forms",
		Selectors:   []string{"form", ".form", ".contact-form"},
		Required:    []string{"fields"},
		Optional:    []string{"labels", "placeholders", "validation"},
	},
	{
		Type:        CategoryProfiles,
		Name:        "User Profiles",
		Icon:        "person",
		Description: "Profiles, members, teams",
		Selectors:   []string{".profile", ".user", `[itemtype*="Person"]`, ".member"},
		Required:    []string{"name"},
		Optional:    []string{"bio", "image", "social", "skills", "experience"},
	},
	{
		Type:        CategoryFAQ,
		Name:        "FAQ/Questions",
		Icon:        "help",
		Description: "Frequently asked questions, Q&A",
		Selectors:   []string{".faq", ".question", `[itemtype*="Question"]`, ".qa"},
		Required:    []string{"question", "answer"},
		Optional:    []string{"category"},
	},
	{
		Type:        CategoryNavigation,
		Name:        "Navigation/Menus",
		Icon:        "menu",
		Description: "Menus, navigation links",
		Selectors:   []string{"nav", ".menu", ".navigation", "header"},
		Required:    []string{"links"},
		Optional:    []string{"categories", "hierarchy"},
	},
	{
		Type:        CategoryContacts,
		Name:        "Contact Details",
		Icon:        "contact_phone",
		Description: "Contact details, addresses, opening hours",
		Selectors:   []string{".contact", `[itemtype*="ContactPoint"]`, ".address"},
		Required:    []string{"info"},
		Optional:    []string{"phone", "email", "address", "hours"},
	},
	{
		Type:        CategorySocial,
		Name:        "Social Links",
		Icon:        "share",
		Description: "Social network links",
		Selectors:   []string{".social", ".social-links", ".social-media"},
		Required:    []string{"links"},
		Optional:    []string{"platform", "handle"},
	},
	{
		Type:        CategoryPagination,
		Name:        "Pagination",
		Icon:        "view_list",
		Description: "Navigation between pages",
		Selectors:   []string{".pagination", ".pager", ".page-numbers"},
		Required:    []string{"pages"},
		Optional:    []string{"total", "current"},
	},
	{
		Type:        CategoryTextContent,
		Name:        "Text Content",
		Icon:        "subject",
		Description: "Paragraphs, main text blocks",
		Selectors:   []string{"p", ".content", ".text", "main"},
		Required:    []string{"text"},
		Optional:    []string{"headings", "lists"},
	},
}
