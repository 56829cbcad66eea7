package util

import (
	"fmt"
	"regexp"
	"strings"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// cssColorNames is the CSS3 extended color keyword set, lowercased.
var cssColorNames = map[string]struct{}{}

func init() {
	for _, name := range []string{
		"aliceblue", "antiquewhite", "aqua", "aquamarine", "azure", "beige",
		"bisque", "black", "blanchedalmond", "blue", "blueviolet", "brown",
		"burlywood", "cadetblue", "chartreuse", "chocolate", "coral",
		"cornflowerblue", "cornsilk", "crimson", "cyan", "darkblue",
		"darkcyan", "darkgoldenrod", "darkgray", "darkgreen", "darkgrey",
		"darkkhaki", "darkmagenta", "darkolivegreen", "darkorange",
		"darkorchid", "darkred", "darksalmon", "darkseagreen",
		"darkslateblue", "darkslategray", "darkslategrey", "darkturquoise",
		"darkviolet", "deeppink", "deepskyblue", "dimgray", "dimgrey",
		"dodgerblue", "firebrick", "floralwhite", "forestgreen", "fuchsia",
		"gainsboro", "ghostwhite", "gold", "goldenrod", "gray", "green",
		"greenyellow", "grey", "honeydew", "hotpink", "indianred", "indigo",
		"ivory", "khaki", "lavender", "lavenderblush", "lawngreen",
		"lemonchiffon", "lightblue", "lightcoral", "lightcyan",
		"lightgoldenrodyellow", "lightgray", "lightgreen", "lightgrey",
		"lightpink", "lightsalmon", "lightseagreen", "lightskyblue",
		"lightslategray", "lightslategrey", "lightsteelblue", "lightyellow",
		"lime", "limegreen", "linen", "magenta", "maroon",
		"mediumaquamarine", "mediumblue", "mediumorchid", "mediumpurple",
		"mediumseagreen", "mediumslateblue", "mediumspringgreen",
		"mediumturquoise", "mediumvioletred", "midnightblue", "mintcream",
		"mistyrose", "moccasin", "navajowhite", "navy", "oldlace", "olive",
		"olivedrab", "orange", "orangered", "orchid", "palegoldenrod",
		"palegreen", "paleturquoise", "palevioletred", "papayawhip",
		"peachpuff", "peru", "pink", "plum", "powderblue", "purple",
		"rebeccapurple", "red", "rosybrown", "royalblue", "saddlebrown",
		"salmon", "sandybrown", "seagreen", "seashell", "sienna", "silver",
		"skyblue", "slateblue", "slategray", "slategrey", "snow",
		"springgreen", "steelblue", "tan", "teal", "thistle", "tomato",
		"turquoise", "violet", "wheat", "white", "whitesmoke", "yellow",
		"yellowgreen",
	} {
		cssColorNames[name] = struct{}{}
	}
}

// ValidateColor accepts HTML color names and hex codes starting with "#"
// (three or six hex digits). The empty string is allowed so optional color
// fields can be cleared.
func ValidateColor(value string) error {
	if value == "" {
		return nil
	}

	if strings.HasPrefix(value, "#") {
		if !hexColorPattern.MatchString(value) {
			return fmt.Errorf("%q is not a valid hex color", value)
		}
		return nil
	}

	if _, ok := cssColorNames[strings.ToLower(value)]; !ok {
		return fmt.Errorf("%q is not a recognized color name", value)
	}
	return nil
}
