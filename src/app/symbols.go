package app

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// basicLandTypes maps basic land subtypes to the color they implicitly
// add to a card's color identity.
var basicLandTypes = map[string]string{
	"Plains":   "W",
	"Island":   "U",
	"Swamp":    "B",
	"Mountain": "R",
	"Forest":   "G",
}

var cardSupertypes = map[string]bool{
	"Basic":     true,
	"Elite":     true,
	"Legendary": true,
	"Ongoing":   true,
	"Snow":      true,
	"World":     true,
}

var rarityNames = map[string]string{
	"basic land":  "common",
	"common":      "common",
	"uncommon":    "uncommon",
	"rare":        "rare",
	"mythic rare": "mythic",
	"special":     "mythic",
}

// builtinWatermarks translates MSE watermark identifiers into schema
// watermark names. The hybrid entries are unofficial.
var builtinWatermarks = map[string]string{
	"mana symbol colorless":                     "colorless",
	"mana symbol white":                         "white",
	"mana symbol blue":                          "blue",
	"mana symbol black":                         "black",
	"mana symbol red":                           "red",
	"mana symbol green":                         "green",
	"other magic symbols story spotlight":       "planeswalker",
	"other magic symbols color spotlight":       "planeswalker",
	"xander hybrid mana W/U":                    "white-blue",
	"xander hybrid mana U/B":                    "blue-black",
	"xander hybrid mana B/R":                    "black-red",
	"xander hybrid mana R/G":                    "red-green",
	"xander hybrid mana G/W":                    "green-white",
	"xander hybrid mana W/B":                    "white-black",
	"xander hybrid mana U/R":                    "blue-red",
	"xander hybrid mana B/G":                    "black-green",
	"xander hybrid mana R/W":                    "red-white",
	"xander hybrid mana G/U":                    "green-blue",
}

// borderColorNames translates MSE border colors (stored as rgb
// triples) into schema border color names.
var borderColorNames = map[string]string{
	"rgb(0,0,0)":       "black",
	"rgb(128,128,128)": "silver",
	"rgb(200,180,0)":   "gold",
	"rgb(222,127,50)":  "bronze",
	"rgb(255,255,255)": "white",
}

func isBasicColor(b byte) bool {
	switch b {
	case 'W', 'U', 'B', 'R', 'G':
		return true
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// ParseManaSymbols translates an MSE symbol sequence into the schema's
// bracketed notation: "2RR" becomes "{2}{R}{R}", "W/U" becomes "{W/U}",
// Phyrexian "H/W" becomes "{W/P}".
func ParseManaSymbols(symbols string) (string, error) {
	if symbols == "T" {
		return "{T}", nil
	}
	var b strings.Builder
	rest := symbols
	for len(rest) > 0 {
		if len(rest) > 2 && rest[1] == '/' {
			if (rest[0] == '2' || isBasicColor(rest[0])) && isBasicColor(rest[2]) {
				fmt.Fprintf(&b, "{%s}", rest[:3])
				rest = rest[3:]
				continue
			}
			if rest[0] == 'H' && isBasicColor(rest[2]) {
				fmt.Fprintf(&b, "{%c/P}", rest[2])
				rest = rest[3:]
				continue
			}
			return "", fmt.Errorf("unknown symbol sequence %q", rest)
		}
		switch {
		case rest[0] == 'C' || rest[0] == 'X' || rest[0] == 'Q' || isBasicColor(rest[0]):
			fmt.Fprintf(&b, "{%c}", rest[0])
			rest = rest[1:]
		case rest[0] == 'V': // runic mana
			b.WriteString("{V}")
			rest = rest[1:]
		case isDigit(rest[0]):
			end := 1
			for end < len(rest) && isDigit(rest[end]) {
				end++
			}
			n, err := strconv.Atoi(rest[:end])
			if err != nil {
				return "", fmt.Errorf("unknown symbol sequence %q", rest)
			}
			fmt.Fprintf(&b, "{%d}", n)
			rest = rest[end:]
		default:
			return "", fmt.Errorf("unknown symbol sequence %q", rest)
		}
	}
	return b.String(), nil
}

// splitBracketedCost splits "{2}{R}{R}" into its parts. An empty cost
// yields no parts.
func splitBracketedCost(cost string) ([]string, error) {
	if cost == "" {
		return nil, nil
	}
	if !strings.HasPrefix(cost, "{") || !strings.HasSuffix(cost, "}") {
		return nil, fmt.Errorf("cost %q must start with { and end with }", cost)
	}
	return strings.Split(cost[1:len(cost)-1], "}{"), nil
}

// ConvertedManaCost computes the converted cost of a bracketed mana
// cost. X counts zero, hybrid generic ("2/G") counts two, everything
// else one symbol each, generic numbers at face value.
func ConvertedManaCost(cost string) (float64, error) {
	parts, err := splitBracketedCost(cost)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, part := range parts {
		switch {
		case len(part) == 1 && isBasicColor(part[0]):
			total++
		case part == "A" || part == "C" || part == "S":
			total++
		case part == "X":
			// variable, counts zero
		case isNumeric(part):
			n, _ := strconv.Atoi(part)
			total += n
		case len(part) == 3 && part[1] == '/' && isBasicColor(part[0]) && isBasicColor(part[2]):
			total++
		case len(part) == 3 && part[1] == '/' && isBasicColor(part[0]) && part[2] == 'P':
			total++
		case len(part) == 3 && part[0] == '2' && part[1] == '/' && isBasicColor(part[2]):
			total += 2
		default:
			return 0, fmt.Errorf("unknown mana cost part {%s}", part)
		}
	}
	return float64(total), nil
}

// ImplicitColors returns the colors a bracketed mana cost implies,
// sorted alphabetically.
func ImplicitColors(cost string) ([]string, error) {
	parts, err := splitBracketedCost(cost)
	if err != nil {
		return nil, err
	}
	set := map[string]bool{}
	for _, part := range parts {
		switch {
		case len(part) == 1 && isBasicColor(part[0]):
			set[part] = true
		case part == "A" || part == "C" || part == "S" || part == "X" || isNumeric(part):
			// colorless
		case len(part) == 3 && part[1] == '/' && isBasicColor(part[0]) && isBasicColor(part[2]):
			set[part[:1]] = true
			set[part[2:]] = true
		case len(part) == 3 && part[1] == '/' && isBasicColor(part[0]) && part[2] == 'P':
			set[part[:1]] = true
		case len(part) == 3 && part[0] == '2' && part[1] == '/' && isBasicColor(part[2]):
			set[part[2:]] = true
		default:
			return nil, fmt.Errorf("unknown mana cost part {%s}", part)
		}
	}
	return sortedKeys(set), nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// SplitTypeLine splits a full type line ("Legendary Creature — Elf
// Druid") into supertypes, card types and subtypes. Words that are not
// known supertypes count as card types, so custom types pass through.
func SplitTypeLine(typeLine string) (supertypes, types, subtypes []string) {
	head := typeLine
	if before, after, found := strings.Cut(typeLine, " — "); found {
		head = before
		for _, word := range strings.Fields(after) {
			subtypes = append(subtypes, word)
		}
	}
	for _, word := range strings.Fields(head) {
		if cardSupertypes[word] {
			supertypes = append(supertypes, word)
		} else {
			types = append(types, word)
		}
	}
	return supertypes, types, subtypes
}

// ComposeTypeLine rebuilds the schema type string from split parts.
func ComposeTypeLine(supertypes, types, subtypes []string) string {
	head := strings.Join(append(append([]string{}, supertypes...), types...), " ")
	if len(subtypes) == 0 {
		return head
	}
	return head + " — " + strings.Join(subtypes, " ")
}

// ImageFileName derives the art file name for a card, following the
// schema's lowercase convention. Non-ASCII names are rejected.
func ImageFileName(cardName string) (string, error) {
	name := strings.ToLower(cardName)
	name = strings.ReplaceAll(name, "‘", "'")
	name = strings.ReplaceAll(name, "’", "'")
	for _, r := range name {
		if r > 126 || (r < 32 && r != '\t') {
			return "", fmt.Errorf("cannot derive image name from %q: unsupported character %q", cardName, r)
		}
	}
	return name, nil
}
