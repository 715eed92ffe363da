package content

import (
	"slices"

	"github.com/remymerlhiot/cote-sud-api/internal/extract"
)

const (
	AgencyPhone = "04 42 08 12 34"
	AgencyEmail = "contact@cotesud-immobilier.fr"

	// DefaultBackground is the hero picture shipped with the site.
	DefaultBackground = "/images/hero-cote-sud.jpg"
)

var defaultTeam = []extract.TeamMember{
	{Name: "Claire Fabre", Role: "Gérante", Phone: AgencyPhone, Email: "claire.fabre@cotesud-immobilier.fr", Image: "/images/equipe/claire.jpg", ImagePosition: "center", ImageSize: "medium"},
	{Name: "Thomas Giraud", Role: "Négociateur immobilier", Phone: "06 48 22 17 90", Email: "thomas.giraud@cotesud-immobilier.fr", Image: "/images/equipe/thomas.jpg", ImagePosition: "top", ImageSize: "medium"},
	{Name: "Léa Marchetti", Role: "Conseillère en location", Phone: "06 71 35 42 08", Email: "lea.marchetti@cotesud-immobilier.fr", Image: "/images/equipe/lea.jpg", ImagePosition: "center", ImageSize: "medium"},
	{Name: "Julien Roux", Role: "Assistant commercial", Phone: AgencyPhone, Email: AgencyEmail, Image: "/images/equipe/julien.jpg", ImagePosition: "center", ImageSize: "medium"},
}

var defaultDifference = extract.Difference{
	Title: "Notre différence",
	Paragraphs: []string{
		"Installée sur la côte depuis plus de vingt ans, notre agence familiale connaît chaque quartier, chaque rue et chaque village de la baie.",
		"Nous accompagnons vendeurs et acquéreurs de l'estimation à la signature, avec une écoute attentive et une transparence totale sur chaque étape.",
		"Notre expertise locale et notre réseau de partenaires de confiance nous permettent de trouver le bien qui vous ressemble.",
	},
}

var defaultServices = []extract.Service{
	{Title: "Vente", Content: "<p>Mise en valeur de votre bien, diffusion sur les principaux portails et accompagnement jusqu'à l'acte authentique.</p>"},
	{Title: "Achat", Content: "<p>Recherche ciblée selon vos critères, visites organisées et conseil sur le juste prix.</p>"},
	{Title: "Location", Content: "<p>Sélection des locataires, rédaction du bail et états des lieux.</p>"},
	{Title: "Gestion locative", Content: "<p>Encaissement des loyers, suivi des travaux et des relations avec vos locataires.</p>"},
	{Title: "Estimation", Content: "<p>Estimation gratuite et sans engagement, fondée sur les ventes récentes du secteur.</p>"},
}

// DefaultTeam returns a copy of the static roster.
func DefaultTeam() []extract.TeamMember { return slices.Clone(defaultTeam) }

func DefaultDifference() extract.Difference {
	d := defaultDifference
	d.Paragraphs = slices.Clone(d.Paragraphs)
	return d
}

func DefaultServices() []extract.Service { return slices.Clone(defaultServices) }
