package app

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ConvertOptions carries caller overrides for the mapping stage.
type ConvertOptions struct {
	// SetCode takes precedence over any code declared in the archive.
	SetCode string
	// SetVersion is recorded in the output meta section when set.
	SetVersion string
}

// Pattern for artist credits of the form "Name (card by Designer)" or
// "Name (design: Designer)"; the designer moves into the flavor text.
var artistCreditPattern = regexp.MustCompile(`^(.+?) *\((?:[Cc]ard by |[Dd]esign:)(.*)\)$`)

var quoteReplacer = strings.NewReplacer("“", `"`, "”", `"`, "‘", "'", "’", "'")

// ConvertSet maps a parsed set description tree to the output document.
// Cards keep their source encounter order; the first error aborts the
// whole conversion.
func ConvertSet(root *Node, opts ConvertOptions) (*SetDocument, error) {
	scope := setScope(root)
	info := scope
	if n := scope.First("set info"); n != nil && n.Kind == KindBlock {
		info = n
	}

	code := opts.SetCode
	if code == "" {
		code = firstString(info, "set code", "code")
	}
	if code == "" {
		code = firstString(scope, "set code", "code")
	}
	if code == "" {
		return nil, &ValidationError{Field: "set code", Reason: "not declared in the archive and no override given"}
	}
	if len(code) < 2 || len(code) > 5 {
		return nil, &ValidationError{Field: "set code", Reason: fmt.Sprintf("%q must be 2-5 characters", code)}
	}

	doc := &SetDocument{
		Code:   code,
		Custom: true,
		Cards:  []*Card{},
		Meta: SetMeta{
			Date:       time.Now().UTC().Format("2006-01-02"),
			SetVersion: opts.SetVersion,
			Version:    schemaVersion,
		},
	}
	doc.Name = firstString(info, "title", "name")
	if doc.Name == "" && info != scope {
		doc.Name = firstString(scope, "title", "name")
	}
	doc.ReleaseDate = firstString(info, "release date")
	setBorder := firstString(info, "border color")

	for position, cn := range scope.All("card") {
		card, err := mapCard(cn, position+1, setBorder)
		if err != nil {
			return nil, err
		}
		doc.Cards = append(doc.Cards, card)
	}
	doc.BaseSetSize = len(doc.Cards)
	doc.TotalSetSize = len(doc.Cards)

	log.Debug().Str("code", doc.Code).Int("cards", len(doc.Cards)).Msg("mapped set")
	return doc, nil
}

// setScope finds the block holding the card entries: the cards may sit
// at the top level or under a single `set` container block.
func setScope(root *Node) *Node {
	if len(root.Children) == 1 && root.Children[0].Key == "set" && root.Children[0].Kind == KindBlock {
		return root.Children[0]
	}
	return root
}

func mapCard(n *Node, position int, setBorder string) (*Card, error) {
	if n.Kind != KindBlock {
		return nil, &ValidationError{Field: "card", Reason: fmt.Sprintf("card entry at line %d is not a block", n.Line)}
	}

	name := firstString(n, "name")
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: fmt.Sprintf("card at line %d is missing its name", n.Line)}
	}
	// Custom cards are never printed in foil.
	card := &Card{Name: strings.ReplaceAll(name, "’", "'"), HasNonFoil: true}

	identity := map[string]bool{}

	// Mana cost and colors.
	if raw := firstString(n, "casting cost", "mana cost"); raw != "" {
		cost, err := ParseManaSymbols(raw)
		if err != nil {
			return nil, &ValidationError{Field: "casting cost", Reason: fmt.Sprintf("card %q: %v", card.Name, err)}
		}
		card.ManaCost = cost
		cmc, err := ConvertedManaCost(cost)
		if err != nil {
			return nil, &ValidationError{Field: "casting cost", Reason: fmt.Sprintf("card %q: %v", card.Name, err)}
		}
		card.ConvertedManaCost = cmc
		colors, err := ImplicitColors(cost)
		if err != nil {
			return nil, &ValidationError{Field: "casting cost", Reason: fmt.Sprintf("card %q: %v", card.Name, err)}
		}
		card.Colors = colors
		for _, c := range colors {
			identity[c] = true
		}
	}
	if card.Colors == nil {
		card.Colors = []string{}
	}

	// Type line, either a ready-made `type` field or the styled
	// super/sub type pair.
	typeLine := firstString(n, "type")
	if typeLine == "" {
		super, ci, err := renderStyledField(n, false, "super type")
		if err != nil {
			return nil, &ValidationError{Field: "type", Reason: fmt.Sprintf("card %q: %v", card.Name, err)}
		}
		sub, _, err := renderStyledField(n, false, "sub type")
		if err != nil {
			return nil, &ValidationError{Field: "type", Reason: fmt.Sprintf("card %q: %v", card.Name, err)}
		}
		mergeInto(identity, ci)
		sub = strings.TrimSpace(sub)
		typeLine = strings.TrimSpace(super)
		if sub != "" {
			typeLine += " — " + sub
		}
	}
	if typeLine == "" {
		return nil, &ValidationError{Field: "type", Reason: fmt.Sprintf("card %q is missing its type line", card.Name)}
	}
	card.OriginalType = typeLine
	card.Supertypes, card.Types, card.Subtypes = SplitTypeLine(typeLine)
	card.Type = ComposeTypeLine(card.Supertypes, card.Types, card.Subtypes)
	for _, sub := range card.Subtypes {
		if color, ok := basicLandTypes[sub]; ok {
			identity[color] = true
		}
	}

	// Rules text: a plain field, or per-level text for levelers and
	// planeswalkers authored with "level N text" fields.
	text, ci, err := renderStyledField(n, false, "text", "rule text")
	if err != nil {
		return nil, &ValidationError{Field: "text", Reason: fmt.Sprintf("card %q: %v", card.Name, err)}
	}
	mergeInto(identity, ci)
	if text == "" && n.First("level 1 text") != nil {
		text, ci, err = levelText(n)
		if err != nil {
			return nil, &ValidationError{Field: "text", Reason: fmt.Sprintf("card %q: %v", card.Name, err)}
		}
		mergeInto(identity, ci)
		card.Text = text
	} else {
		card.Text = finishRulesText(n, text)
	}
	card.OriginalText = card.Text

	// Power and toughness are creature-only; loyalty is planeswalker-only.
	if containsWord(card.Types, "Creature") {
		card.Power = firstString(n, "power")
		card.Toughness = firstString(n, "toughness")
	}
	if containsWord(card.Types, "Planeswalker") {
		card.Loyalty = firstString(n, "loyalty")
	}

	if raw := firstString(n, "rarity"); raw != "" {
		rarity, ok := rarityNames[raw]
		if !ok {
			return nil, &ValidationError{Field: "rarity", Reason: fmt.Sprintf("card %q: unknown rarity %q", card.Name, raw)}
		}
		if rarity != raw {
			log.Warn().Str("card", card.Name).Str("rarity", raw).Msgf("rarity %q not supported by the schema, using %q", raw, rarity)
		}
		card.Rarity = rarity
	}

	// Flavor text keeps its soft line breaks.
	flavor, _, err := renderStyledField(n, true, "flavor text")
	if err != nil {
		return nil, &ValidationError{Field: "flavor text", Reason: fmt.Sprintf("card %q: %v", card.Name, err)}
	}
	flavor = strings.TrimRight(flavor, " \n")

	if artist := firstString(n, "illustrator"); artist != "" {
		if m := artistCreditPattern.FindStringSubmatch(artist); m != nil {
			credit := "Designed by " + m[2]
			if flavor == "" {
				flavor = credit
			} else {
				flavor += "\n" + credit
			}
			artist = m[1]
		}
		card.Artist = artist
	}
	card.FlavorText = flavor

	if raw := firstString(n, "watermark"); raw != "" && raw != "none" {
		watermark, ok := builtinWatermarks[raw]
		if !ok {
			return nil, &ValidationError{Field: "watermark", Reason: fmt.Sprintf("card %q: unknown watermark %q", card.Name, raw)}
		}
		card.Watermark = watermark
	}

	border := firstString(n, "border color")
	if border == "" {
		border = setBorder
	}
	if border == "" {
		border = "rgb(0,0,0)"
	}
	borderName, ok := borderColorNames[border]
	if !ok {
		return nil, &ValidationError{Field: "border color", Reason: fmt.Sprintf("card %q: unknown border color %q", card.Name, border)}
	}
	card.BorderColor = borderName

	card.ColorIdentity = sortedKeys(identity)
	card.imageEntry = firstString(n, "image")

	// Explicit collector numbers win over the positional default.
	card.Number = firstString(n, "number")
	if card.Number == "" {
		card.Number = strconv.Itoa(position)
	}
	return card, nil
}

// renderStyledField decodes the first present key out of keys and
// rewrites symbol runs into bracketed notation. The returned colors are
// the identity contributed by non-reminder symbols.
func renderStyledField(n *Node, keepSoft bool, keys ...string) (string, []string, error) {
	raw := firstString(n, keys...)
	if raw == "" {
		for _, key := range keys {
			if c := n.First(key); c != nil && c.Kind == KindBlock {
				log.Warn().Str("field", key).Int("line", c.Line).Msg("field parses as a keyed block, dropping its text")
			}
		}
		return "", nil, nil
	}
	var runs []Run
	if keepSoft {
		runs = DecodeMarkupKeepSoftLines(raw)
	} else {
		runs = DecodeMarkup(raw)
	}

	var b strings.Builder
	identity := map[string]bool{}
	for _, run := range runs {
		if !run.Symbol {
			b.WriteString(run.Text)
			continue
		}
		symbols, err := ParseManaSymbols(run.Text)
		if err != nil {
			return "", nil, err
		}
		b.WriteString(symbols)
		if run.Italic || symbols == "{T}" || symbols == "{Q}" {
			continue // reminder text never contributes identity
		}
		colors, err := ImplicitColors(symbols)
		if err != nil {
			return "", nil, err
		}
		for _, c := range colors {
			identity[c] = true
		}
	}

	text := b.String()
	// Soft newline removal can leave doubled spaces, and bullets lose
	// their breaks; restore both the way the source tool renders them.
	text = strings.ReplaceAll(text, "•", "\n•")
	for strings.Contains(text, "  ") {
		text = strings.ReplaceAll(text, "  ", " ")
	}
	text = strings.ReplaceAll(text, " \n", "\n")
	text = strings.ReplaceAll(text, "\n ", "\n")
	text = strings.Trim(text, " ")
	text = quoteReplacer.Replace(text)
	return text, sortedKeys(identity), nil
}

// finishRulesText trims the decoded rules text and applies per-line
// loyalty costs ("loyalty cost N" fields become "[+1]: ..." prefixes).
func finishRulesText(n *Node, text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for i := range lines {
		if cost := firstString(n, fmt.Sprintf("loyalty cost %d", i+1)); cost != "" {
			lines[i] = fmt.Sprintf("[%s]: %s", cost, lines[i])
		}
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.Join(lines, "\n")
}

// levelText builds rules text from "level N text" fields, one line per
// level with its loyalty cost prefix when present. Levels are read
// upward from 1 until the first gap.
func levelText(n *Node) (string, []string, error) {
	var lines []string
	identity := map[string]bool{}
	for level := 1; ; level++ {
		key := fmt.Sprintf("level %d text", level)
		if n.First(key) == nil {
			break
		}
		line, ci, err := renderStyledField(n, false, key)
		if err != nil {
			return "", nil, err
		}
		mergeInto(identity, ci)
		if cost := firstString(n, fmt.Sprintf("loyalty cost %d", level)); cost != "" {
			line = fmt.Sprintf("[%s]: %s", cost, line)
		}
		lines = append(lines, strings.TrimRight(line, " "))
	}
	return strings.Join(lines, "\n"), sortedKeys(identity), nil
}

// firstString returns the value of the first child matching any of the
// keys, trying keys in order. Only string-valued variants qualify.
func firstString(n *Node, keys ...string) string {
	for _, key := range keys {
		c := n.First(key)
		if c == nil {
			continue
		}
		if c.Kind == KindScalar || c.Kind == KindText {
			return c.Value
		}
	}
	return ""
}

func mergeInto(dst map[string]bool, colors []string) {
	for _, c := range colors {
		dst[c] = true
	}
}

func containsWord(words []string, want string) bool {
	for _, w := range words {
		if w == want {
			return true
		}
	}
	return false
}
