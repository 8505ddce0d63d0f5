package classifier

// SiteType is the macro category assigned to an entire site.
type SiteType string

// Site categories.
const (
	SiteEducation     SiteType = "education"
	SiteEcommerce     SiteType = "ecommerce"
	SiteNews          SiteType = "news"
	SiteBlog          SiteType = "blog"
	SiteRestaurant    SiteType = "restaurant"
	SiteTravel        SiteType = "travel"
	SiteHealth        SiteType = "health"
	SiteJob           SiteType = "job"
	SiteRealEstate    SiteType = "real_estate"
	SiteGovernment    SiteType = "government"
	SiteNonprofit     SiteType = "nonprofit"
	SiteEntertainment SiteType = "entertainment"
	SiteSports        SiteType = "sports"
	SiteCorporate     SiteType = "corporate"
	SiteSocial        SiteType = "social"
	SiteDocumentation SiteType = "documentation"
	SitePortfolio     SiteType = "portfolio"
	SiteForum         SiteType = "forum"
)

// Classification sources, strongest first.
const (
	SourceSchemaOrg       = "schema.org"
	SourceOpenGraph       = "opengraph"
	SourceMeta            = "meta"
	SourceKeywordFallback = "keyword-fallback"
)

// Cascade confidence levels.
const (
	confidenceSchemaOrg = 0.90
	confidenceOpenGraph = 0.80
	confidenceMeta      = 0.70
)

// schemaTypeMapping maps Schema.org @type values to site categories.
var schemaTypeMapping = map[string]SiteType{
	"EducationalOrganization": SiteEducation,
	"CollegeOrUniversity":     SiteEducation,
	"School":                  SiteEducation,
	"OnlineCourse":            SiteEducation,
	"Course":                  SiteEducation,
	"Store":                   SiteEcommerce,
	"OnlineStore":             SiteEcommerce,
	"Product":                 SiteEcommerce,
	"Offer":                   SiteEcommerce,
	"NewsArticle":             SiteNews,
	"NewsMediaOrganization":   SiteNews,
	"Blog":                    SiteBlog,
	"BlogPosting":             SiteBlog,
	"Restaurant":              SiteRestaurant,
	"FoodEstablishment":       SiteRestaurant,
	"Hotel":                   SiteTravel,
	"TravelAgency":            SiteTravel,
	"TouristAttraction":       SiteTravel,
	"Hospital":                SiteHealth,
	"MedicalOrganization":     SiteHealth,
	"Physician":               SiteHealth,
	"JobPosting":              SiteJob,
	"RealEstateAgent":         SiteRealEstate,
	"Residence":               SiteRealEstate,
	"GovernmentOrganization":  SiteGovernment,
	"NGO":                     SiteNonprofit,
	"MovieTheater":            SiteEntertainment,
	"MusicGroup":              SiteEntertainment,
	"SportsOrganization":      SiteSports,
	"SportsTeam":              SiteSports,
	"Organization":            SiteCorporate,
	"Corporation":             SiteCorporate,
	"LocalBusiness":           SiteCorporate,
}

// ogTypeMapping maps OpenGraph og:type values to site categories.
// The generic "website" value carries no signal and is absent.
var ogTypeMapping = map[string]SiteType{
	"article":               SiteBlog,
	"blog":                  SiteBlog,
	"product":               SiteEcommerce,
	"product.group":         SiteEcommerce,
	"product.item":          SiteEcommerce,
	"video.movie":           SiteEntertainment,
	"video.episode":         SiteEntertainment,
	"music.song":            SiteEntertainment,
	"music.album":           SiteEntertainment,
	"book":                  SiteDocumentation,
	"profile":               SiteSocial,
	"restaurant.restaurant": SiteRestaurant,
	"restaurant.menu":       SiteRestaurant,
}

// siteIcons are UI icon names per category.
var siteIcons = map[SiteType]string{
	SiteEducation:     "school",
	SiteEcommerce:     "shopping_cart",
	SiteNews:          "newspaper",
	SiteBlog:          "article",
	SiteRestaurant:    "restaurant",
	SiteTravel:        "flight",
	SiteHealth:        "local_hospital",
	SiteJob:           "work",
	SiteRealEstate:    "home",
	SiteGovernment:    "account_balance",
	SiteNonprofit:     "volunteer_activism",
	SiteEntertainment: "movie",
	SiteSports:        "sports_soccer",
	SiteCorporate:     "business",
	SiteSocial:        "people",
	SiteDocumentation: "description",
	SitePortfolio:     "photo_library",
	SiteForum:         "forum",
}

// siteTitles are display labels per category.
var siteTitles = map[SiteType]string{
	SiteEducation:     "Educational Institution",
	SiteEcommerce:     "E-commerce",
	SiteNews:          "News Outlet",
	SiteBlog:          "Blog",
	SiteRestaurant:    "Restaurant",
	SiteTravel:        "Travel & Tourism",
	SiteHealth:        "Health",
	SiteJob:           "Jobs",
	SiteRealEstate:    "Real Estate",
	SiteGovernment:    "Government Site",
	SiteNonprofit:     "Nonprofit Organization",
	SiteEntertainment: "Entertainment",
	SiteSports:        "Sports",
	SiteCorporate:     "Corporate Site",
	SiteSocial:        "Social Network",
	SiteDocumentation: "Documentation",
	SitePortfolio:     "Portfolio",
	SiteForum:         "Forum",
}

// siteDescriptions are one-line descriptions per category.
var siteDescriptions = map[SiteType]string{
	SiteEducation:     "School, university or training center",
	SiteEcommerce:     "Online shopping site",
	SiteNews:          "News and information media",
	SiteBlog:          "Personal or professional blog",
	SiteRestaurant:    "Restaurant or food establishment",
	SiteTravel:        "Travel and tourism services",
	SiteHealth:        "Health and medical services",
	SiteJob:           "Job offers and recruitment",
	SiteRealEstate:    "Property sales and rentals",
	SiteGovernment:    "Official government site",
	SiteNonprofit:     "Charity or community organization",
	SiteEntertainment: "Entertainment content",
	SiteSports:        "Sports and athletic activities",
	SiteCorporate:     "Company website",
	SiteSocial:        "Social networking platform",
	SiteDocumentation: "Technical documentation or guides",
	SitePortfolio:     "Professional or artistic portfolio",
	SiteForum:         "Community discussion forum",
}
