package classifier

import (
	"math"
	"net/url"
	"strings"
)

// keywordProfile is one weighted category in the fallback scorer.
// Keyword lists stay bilingual (French/English) on purpose; the
// heuristics grew against francophone sites.
type keywordProfile struct {
	Type     SiteType
	Weight   float64
	Keywords []string
}

// keywordProfiles are scored in order; the first maximum wins, which
// keeps the fallback deterministic.
var keywordProfiles = []keywordProfile{
	{
		Type:   SiteEducation,
		Weight: 1.5,
		Keywords: []string{
			"université", "university", "école", "school", "college", "formation", "education",
			"cours", "course", "étudiant", "student", "campus", "académie", "academy",
			"institut", "institute", "apprentissage", "learning", "diplôme", "degree",
			"bachelor", "master", "programme", "program", "enseignement", "teaching",
			"professeur", "professor", "classe", "class", "licence", "doctorat", "phd",
			"admissions", "inscription", "scolarité", "tuition", "faculté", "faculty",
		},
	},
	{
		Type:   SiteEcommerce,
		Weight: 1.0,
		Keywords: []string{
			"shop", "store", "boutique", "acheter", "buy", "panier", "cart", "checkout",
			"produit", "product", "prix", "price", "vente", "sale", "promo", "discount",
			"livraison", "shipping", "delivery", "commander", "order", "paiement", "payment",
			"add to cart", "ajouter au panier", "stock", "disponible", "available",
			"catalogue", "catalog", "catégorie", "category",
		},
	},
	{
		Type:   SiteNews,
		Weight: 1.2,
		Keywords: []string{
			"actualité", "actualités", "news", "journal", "newspaper", "presse", "press",
			"information", "média", "media", "reportage", "report", "édition", "edition",
			"journaliste", "journalist", "rédaction", "breaking", "dernière heure",
			"direct", "live", "vidéo", "video", "politique", "économie", "economy",
		},
	},
	{
		Type:   SiteBlog,
		Weight: 1.0,
		Keywords: []string{
			"blog", "article", "post", "publication", "auteur", "author", "écrit par", "written by",
			"commentaire", "comment", "partager", "share", "suivre", "follow",
			"abonner", "subscribe", "newsletter", "publié", "published", "tags", "catégories",
		},
	},
	{
		Type:   SitePortfolio,
		Weight: 1.0,
		Keywords: []string{
			"portfolio", "projets", "projects", "réalisations", "works", "créations",
			"galerie", "gallery", "designer", "développeur", "developer", "artist",
			"photographe", "photographer", "créatif", "creative", "showcase",
		},
	},
	{
		Type:   SiteForum,
		Weight: 1.1,
		Keywords: []string{
			"forum", "discussion", "topic", "thread", "post", "membre", "member",
			"répondre", "reply", "community", "communauté", "messages", "sujet",
			"fil de discussion", "modérateur", "moderator", "upvote", "vote",
		},
	},
	{
		Type:   SiteSocial,
		Weight: 1.0,
		Keywords: []string{
			"social", "réseau", "network", "profil", "profile", "ami", "friend",
			"follower", "suiveur", "like", "j'aime", "partager", "share", "timeline",
			"feed", "fil", "message privé", "dm", "notification", "hashtag",
		},
	},
	{
		Type:   SiteDocumentation,
		Weight: 1.0,
		Keywords: []string{
			"documentation", "docs", "guide", "tutorial", "api", "référence", "reference",
			"manuel", "manual", "getting started", "quickstart", "installation",
			"configuration", "exemples", "examples", "faq",
		},
	},
	{
		Type:   SiteRestaurant,
		Weight: 1.2,
		Keywords: []string{
			"restaurant", "menu", "carte", "réservation", "reservation", "booking",
			"cuisine", "chef", "plat", "dish", "gastronomie", "gastronomy",
			"table", "dîner", "dinner", "déjeuner", "lunch", "horaires", "hours",
		},
	},
	{
		Type:   SiteHealth,
		Weight: 1.3,
		Keywords: []string{
			"santé", "health", "médical", "medical", "hôpital", "hospital", "clinique", "clinic",
			"docteur", "doctor", "patient", "traitement", "treatment", "consultation",
			"rendez-vous", "appointment", "pharmacie", "pharmacy", "soin", "care",
		},
	},
	{
		Type:   SiteRealEstate,
		Weight: 1.1,
		Keywords: []string{
			"immobilier", "real estate", "maison", "house", "appartement", "apartment",
			"vente", "sale", "location", "rent", "achat", "buy", "propriété", "property",
			"m²", "chambre", "bedroom", "annonce", "listing", "agence", "agency",
		},
	},
	{
		Type:   SiteJob,
		Weight: 1.1,
		Keywords: []string{
			"emploi", "job", "carrière", "career", "recrutement", "recruitment", "cv", "resume",
			"candidature", "application", "offre", "offer", "poste", "position",
			"salaire", "salary", "entreprise", "company", "talents", "hiring",
		},
	},
	{
		Type:   SiteTravel,
		Weight: 1.0,
		Keywords: []string{
			"voyage", "travel", "tourisme", "tourism", "hôtel", "hotel", "réservation", "booking",
			"vol", "flight", "destination", "vacances", "vacation", "séjour", "stay",
			"guide", "visite", "visit", "itinéraire", "itinerary",
		},
	},
	{
		Type:   SiteEntertainment,
		Weight: 1.0,
		Keywords: []string{
			"film", "movie", "série", "series", "streaming", "vidéo", "video",
			"musique", "music", "jeu", "game", "divertissement", "entertainment",
			"spectacle", "show", "concert", "événement", "event",
		},
	},
	{
		Type:   SiteCorporate,
		Weight: 0.8,
		Keywords: []string{
			"entreprise", "company", "corporation", "business", "service", "solution",
			"about", "à propos", "contact", "équipe", "team", "expertise", "professionnel",
		},
	},
}

// Strong TLD signals checked before any keyword scoring.
var (
	educationTLDs = []string{".edu", ".ac.uk", ".edu.au", ".edu.cn", ".edu.ci"}
	// educationalDomains covers institutions without an .edu TLD.
	educationalDomains = []string{"iit.ci", "inphb.ci", "univ", "university", "college", "school", "academy", "institute", "esatic"}
	governmentTLDs     = []string{".gov", ".gouv.fr", ".gov.uk"}
	nonprofitTLDs      = []string{".org", ".ong"}
	nonprofitKeywords  = []string{"donation", "don", "charité", "charity", "association", "ong", "ngo"}
)

// Fallback confidence shaping.
const (
	confidenceEduTLD    = 0.95
	confidenceEduDomain = 0.92
	confidenceGovTLD    = 0.95
	confidenceOrgTLD    = 0.85
	confidenceDefault   = 0.3
	confidenceFloor     = 0.4
	confidencePerPoint  = 0.05
	confidenceCap       = 0.95
	sampleTextWindow    = 2000
)

// Detected-field score bonuses.
const (
	bonusPrice          = 5.0
	bonusPriceEducation = 2.0 // reduced: tuition fees are prices too
	bonusDate           = 3.0
	bonusImagePortfolio = 4.0
	bonusEducationField = 5.0
	// educationDominance is the education score above which a price
	// field stops being an e-commerce tell.
	educationDominance = 3.0
)

var educationFieldNames = []string{"course", "program", "student", "teacher"}

// ClassifyKeywords is the last-resort classifier: domain TLD checks
// first, then a weighted keyword-overlap score across all profiles,
// nudged by the fields the collection analysis detected. It always
// returns a classification, degrading to a generic corporate label.
func ClassifyKeywords(pageURL, pageTitle, sampleText string, detectedFields []string) SiteClassification {
	sample := strings.ToLower(sampleText)
	if len(sample) > sampleTextWindow {
		sample = sample[:sampleTextWindow]
	}
	content := strings.ToLower(pageURL) + " " + strings.ToLower(pageTitle) + " " + sample

	domain := hostOf(pageURL)
	if suffixAny(domain, educationTLDs) {
		sc := classification(SiteEducation, confidenceEduTLD, SourceKeywordFallback)
		sc.Description = "Official academic institution"
		return sc
	}
	// Even program pages of a school carry prices (tuition fees), so a
	// recognized educational domain wins outright.
	if containsAnyKeyword(domain, educationalDomains) {
		return classification(SiteEducation, confidenceEduDomain, SourceKeywordFallback)
	}
	if suffixAny(domain, governmentTLDs) {
		return classification(SiteGovernment, confidenceGovTLD, SourceKeywordFallback)
	}
	if suffixAny(domain, nonprofitTLDs) && containsAnyKeyword(content, nonprofitKeywords) {
		return classification(SiteNonprofit, confidenceOrgTLD, SourceKeywordFallback)
	}

	scores := make(map[SiteType]float64, len(keywordProfiles))
	for _, p := range keywordProfiles {
		hits := 0
		for _, kw := range p.Keywords {
			if strings.Contains(content, kw) {
				hits++
			}
		}
		scores[p.Type] = float64(hits) * p.Weight
	}
	applyFieldBonuses(scores, detectedFields)

	winner := SiteType("")
	best := 0.0
	for _, p := range keywordProfiles {
		if scores[p.Type] > best {
			best = scores[p.Type]
			winner = p.Type
		}
	}

	if best == 0 {
		return SiteClassification{
			Type:        SiteCorporate,
			Title:       "Website",
			Icon:        "public",
			Confidence:  confidenceDefault,
			Description: "Generic website",
			Source:      SourceKeywordFallback,
		}
	}

	confidence := math.Min(confidenceCap, confidenceFloor+best*confidencePerPoint)
	return classification(winner, confidence, SourceKeywordFallback)
}

// applyFieldBonuses nudges scores using fields found by the collection
// analysis.
func applyFieldBonuses(scores map[SiteType]float64, detectedFields []string) {
	if len(detectedFields) == 0 {
		return
	}
	fields := make(map[string]struct{}, len(detectedFields))
	for _, f := range detectedFields {
		fields[f] = struct{}{}
	}

	if _, ok := fields["price"]; ok {
		if scores[SiteEducation] > educationDominance {
			scores[SiteEcommerce] += bonusPriceEducation
		} else {
			scores[SiteEcommerce] += bonusPrice
		}
	}
	if _, ok := fields["date"]; ok {
		scores[SiteBlog] += bonusDate
		scores[SiteNews] += bonusDate
	}
	if _, ok := fields["image"]; ok && scores[SitePortfolio] > 0 {
		scores[SitePortfolio] += bonusImagePortfolio
	}
	for _, f := range educationFieldNames {
		if _, ok := fields[f]; ok {
			scores[SiteEducation] += bonusEducationField
			break
		}
	}
}

func hostOf(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return strings.ToLower(pageURL)
	}
	return strings.ToLower(u.Host)
}

func suffixAny(s string, suffixes []string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

func containsAnyKeyword(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
