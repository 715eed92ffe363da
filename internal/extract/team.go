package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/remymerlhiot/cote-sud-api/internal/canon"
)

// PhoneUnavailable is the phone of a member found with an email only.
const PhoneUnavailable = "Non communiqué"

type TeamMember struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email,omitempty"`
	Role          string `json:"role,omitempty"`
	LinkedIn      string `json:"linkedin,omitempty"`
	Image         string `json:"image,omitempty"`
	ImagePosition string `json:"imagePosition,omitempty"`
	ImageSize     string `json:"imageSize"`
}

var teamLocator = Locator{
	Selectors: []string{"#equipe", "#team", "#notre-equipe", ".team", ".equipe", ".team-members", ".our-team", ".notre-equipe"},
	Headings:  []string{"equipe", "team", "nos agents", "nos conseillers", "collaborateurs"},
	Keywords:  []string{"tel", "@", "mail", "agent", "conseill", "negociat", "gerant", "directeur", "directrice", "assistant"},
}

const cardSelector = ".team-member, .member, .membre, .agent, .elementor-team-member, .team-card"

var (
	// tried in order, first match wins
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:\+33\s?|0)[67](?:[\s.\-]?\d{2}){4}`),
		regexp.MustCompile(`(?:\+33\s?|0)[1-59](?:[\s.\-]?\d{2}){4}`),
		regexp.MustCompile(`\b\d{10}\b`),
	}
	reEmail     = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	reDigitRun  = regexp.MustCompile(`\d[\d\s.\-]{5,}\d`)
	roleWords   = []string{"gerant", "directeur", "directrice", "negociat", "conseill", "agent", "assistant", "responsable", "fondat", "associe", "manager", "commercial", "juriste", "secretaire", "comptable", "mandataire"}
	roleStyling = []string{"subtitle", "sous-titre", "small", "light", "role", "job"}
)

// TeamMembers extracts the member cards of the team section. Explicit
// cards and heading-derived cards are both collected, so a card matched
// by both passes shows up twice. The positional pass only runs when the
// other two found nothing.
func TeamMembers(raw string) []TeamMember {
	return guard(func() []TeamMember {
		root := parse(raw)
		if root == nil {
			return nil
		}
		box := teamLocator.Locate(root)
		if box.Length() == 0 {
			return nil
		}

		var out []TeamMember
		add := func(card *goquery.Selection, name string) {
			if m, ok := readMember(card, name); ok {
				out = append(out, m)
			}
		}
		box.Find(cardSelector).Each(func(_ int, card *goquery.Selection) {
			add(card, "")
		})
		box.Find(headingSelector).Each(func(_ int, h *goquery.Selection) {
			name := text(h)
			if !isName(name) || canon.ContainsAny(name, teamLocator.Headings...) {
				return
			}
			if card := cardOf(h, box); card != nil {
				add(card, name)
			}
		})
		if len(out) > 0 {
			return out
		}
		for _, card := range contactCards(box) {
			// the smallest contact block may miss the name, sitting next to it
			for depth := 0; depth < 3 && card.Length() > 0; depth++ {
				if m, ok := readMember(card, ""); ok {
					out = append(out, m)
					break
				}
				if card.IsSelection(box) {
					break
				}
				card = card.Parent()
			}
		}
		return out
	})
}

// contactCards returns the innermost blocks of box holding contact details.
func contactCards(box *goquery.Selection) []*goquery.Selection {
	const blocks = "div, li, article, td"
	var out []*goquery.Selection
	box.Find(blocks).Each(func(_ int, s *goquery.Selection) {
		if !hasContact(s) {
			return
		}
		inner := s.Find(blocks).FilterFunction(func(_ int, c *goquery.Selection) bool {
			return hasContact(c)
		})
		if inner.Length() == 0 {
			out = append(out, s)
		}
	})
	return out
}

// cardOf climbs from a heading to the nearest ancestor holding contact
// details, without leaving the section.
func cardOf(h, box *goquery.Selection) *goquery.Selection {
	n := h.Parent()
	for depth := 0; depth < 3 && n.Length() > 0; depth++ {
		if hasContact(n) {
			return n
		}
		if n.IsSelection(box) {
			break
		}
		n = n.Parent()
	}
	return nil
}

func hasContact(s *goquery.Selection) bool {
	if s.Find(`a[href^="tel:"], a[href^="mailto:"]`).Length() > 0 {
		return true
	}
	t := s.Text()
	return findPhone(t) != "" || reEmail.MatchString(t)
}

func readMember(card *goquery.Selection, name string) (TeamMember, bool) {
	if name == "" {
		name = memberName(card)
	}
	m := TeamMember{
		Name:     name,
		Phone:    memberPhone(card),
		Email:    memberEmail(card),
		LinkedIn: memberLinkedIn(card),
	}
	if m.Name == "" || (m.Phone == "" && m.Email == "") {
		return TeamMember{}, false
	}
	if m.Phone == "" {
		m.Phone = PhoneUnavailable
	}
	m.Role = memberRole(card, m.Name)
	m.Image, m.ImagePosition, m.ImageSize = memberImage(card)
	return m, true
}

func memberName(card *goquery.Selection) string {
	if s := card.Find(".name, .team-name, .member-name, .nom, [itemprop=name], .elementor-image-box-title").First(); s.Length() > 0 {
		if n := text(s); isName(n) {
			return n
		}
	}
	var name string
	card.Find(headingSelector).EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if n := text(h); isName(n) && !canon.ContainsAny(n, teamLocator.Headings...) {
			name = n
			return false
		}
		return true
	})
	if name != "" {
		return name
	}
	card.Find("strong, b").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if n := text(s); isName(n) {
			name = n
			return false
		}
		return true
	})
	if name != "" {
		return name
	}
	if p := card.Find("p").First(); p.Length() > 0 {
		if n := text(p); isName(n) && len(strings.Fields(n)) <= 4 {
			return n
		}
	}
	return ""
}

// isName rejects text that is obviously contact data or prose.
func isName(s string) bool {
	if s == "" || len(s) > 60 {
		return false
	}
	return !strings.Contains(s, "@") && !reDigitRun.MatchString(s)
}

func memberPhone(card *goquery.Selection) string {
	if a := card.Find(`a[href^="tel:"]`).First(); a.Length() > 0 {
		if p := findPhone(text(a)); p != "" {
			return p
		}
		href, _ := a.Attr("href")
		return strings.TrimSpace(strings.TrimPrefix(href, "tel:"))
	}
	if s := card.Find(".phone, .tel, .telephone, .team-phone").First(); s.Length() > 0 {
		if p := findPhone(text(s)); p != "" {
			return p
		}
		if t := text(s); t != "" {
			return t
		}
	}
	return findPhone(card.Text())
}

func findPhone(s string) string {
	for _, re := range phonePatterns {
		if m := re.FindString(s); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

func memberEmail(card *goquery.Selection) string {
	if a := card.Find(`a[href^="mailto:"]`).First(); a.Length() > 0 {
		href, _ := a.Attr("href")
		addr := strings.TrimPrefix(href, "mailto:")
		if i := strings.IndexByte(addr, '?'); i >= 0 {
			addr = addr[:i]
		}
		if addr = strings.TrimSpace(addr); addr != "" {
			return addr
		}
	}
	if s := card.Find(".email, .mail, .team-email").First(); s.Length() > 0 {
		if e := reEmail.FindString(s.Text()); e != "" {
			return e
		}
	}
	return reEmail.FindString(card.Text())
}

func memberRole(card *goquery.Selection, name string) string {
	if s := card.Find(".role, .poste, .fonction, .job-title, .team-role, .position").First(); s.Length() > 0 {
		if r := text(s); r != "" {
			return r
		}
	}
	var role string
	card.Find("p, span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		for _, t := range lines(s) {
			if t == name || !isName(t) {
				continue
			}
			if canon.ContainsAny(t, roleWords...) {
				role = t
				return false
			}
		}
		return true
	})
	if role != "" {
		return role
	}
	card.Find("p, span, small, em").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		t := text(s)
		if t == "" || t == name || !isName(t) {
			return true
		}
		class, _ := s.Attr("class")
		if goquery.NodeName(s) == "small" || goquery.NodeName(s) == "em" || canon.ContainsAny(class, roleStyling...) {
			role = t
			return false
		}
		return true
	})
	return role
}

// lines returns the text of s split at <br>, whitespace collapsed.
func lines(s *goquery.Selection) []string {
	var (
		out []string
		b   strings.Builder
	)
	flush := func() {
		if t := canon.CollapseSpaces(b.String()); t != "" {
			out = append(out, t)
		}
		b.Reset()
	}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
		case n.Type == html.ElementNode && n.Data == "br":
			flush()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
	flush()
	return out
}

func memberLinkedIn(card *goquery.Selection) string {
	if a := card.Find(`a[href*="linkedin.com"]`).First(); a.Length() > 0 {
		href, _ := a.Attr("href")
		return href
	}
	var link string
	card.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		label, _ := a.Attr("aria-label")
		title, _ := a.Attr("title")
		class, _ := a.Attr("class")
		if canon.ContainsAny(label+" "+title+" "+class, "linkedin") {
			link, _ = a.Attr("href")
			return false
		}
		return true
	})
	return link
}

// memberImage returns the picture URL with its position hint and size
// category.
func memberImage(card *goquery.Selection) (src, position, size string) {
	size = "medium"
	img := card.Find("img").First()
	if img.Length() == 0 {
		return "", "", size
	}
	for _, attr := range []string{"data-src", "data-lazy-src", "src"} {
		if v, ok := img.Attr(attr); ok && strings.TrimSpace(v) != "" && !strings.HasPrefix(v, "data:") {
			src = strings.TrimSpace(v)
			break
		}
	}
	position = imagePosition(card, img)
	size = imageSize(img)
	return src, position, size
}

var rePosition = regexp.MustCompile(`(?:object|background)-position\s*:\s*([^;]+)`)

func imagePosition(card, img *goquery.Selection) string {
	style, _ := img.Attr("style")
	if m := rePosition.FindStringSubmatch(style); m != nil {
		return strings.TrimSpace(m[1])
	}
	classes, _ := card.Attr("class")
	if p, ok := img.Closest(`[class*="elementor-position-"]`).Attr("class"); ok {
		classes += " " + p
	}
	for _, c := range strings.Fields(classes) {
		if after, ok := strings.CutPrefix(c, "elementor-position-"); ok {
			return after
		}
	}
	return "center"
}

func imageSize(img *goquery.Selection) string {
	classes, _ := img.Attr("class")
	switch {
	case strings.Contains(classes, "size-thumbnail"):
		return "small"
	case strings.Contains(classes, "size-large"), strings.Contains(classes, "size-full"):
		return "large"
	case strings.Contains(classes, "size-medium"):
		return "medium"
	}
	if w, _ := img.Attr("width"); w != "" {
		n, err := strconv.Atoi(strings.TrimSuffix(w, "px"))
		if err == nil {
			switch {
			case n <= 150:
				return "small"
			case n <= 400:
				return "medium"
			default:
				return "large"
			}
		}
	}
	return "medium"
}
