package reviews

import "time"

// SimulatedNote flags an ingestion that used the built-in dataset.
const SimulatedNote = "Avis simulés : la page d'avis n'a pas pu être lue."

// Simulated returns the built-in reviews. Dates are fixed so that
// repeated ingestions store nothing new.
func Simulated(now time.Time) []Review {
	d := func(y int, m time.Month, dd int) time.Time { return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC) }
	out := []Review{
		{Author: "Nathalie B.", Rating: 5, Date: d(2024, time.September, 12), Text: "Une équipe à l'écoute qui a vendu notre maison en moins de deux mois. Merci pour votre professionnalisme."},
		{Author: "Olivier M.", Rating: 5, Date: d(2024, time.July, 3), Text: "Très bon accompagnement pour l'achat de notre appartement à La Ciotat, du premier appel jusqu'à la signature."},
		{Author: "Sandrine P.", Rating: 4, Date: d(2024, time.May, 21), Text: "Agence sérieuse et réactive, estimation juste et visites bien organisées."},
		{Author: "Frédéric L.", Rating: 5, Date: d(2024, time.March, 8), Text: "Gestion locative impeccable depuis trois ans, je recommande sans hésiter."},
		{Author: "Camille D.", Rating: 5, Date: d(2023, time.November, 27), Text: "Des conseils précieux et une vraie connaissance du secteur de Cassis."},
	}
	for i := range out {
		out[i].Source = SourceSimulated
		out[i].CreatedAt = now
	}
	return out
}
