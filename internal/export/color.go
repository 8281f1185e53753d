package export

import (
	"strconv"
	"strings"
)

// COLOR takes a CSS3 color name, so palette hex values are mapped to the
// closest named color.
var cssColors = []struct {
	name    string
	r, g, b int
}{
	{"black", 0, 0, 0},
	{"white", 255, 255, 255},
	{"gray", 128, 128, 128},
	{"silver", 192, 192, 192},
	{"red", 255, 0, 0},
	{"crimson", 220, 20, 60},
	{"tomato", 255, 99, 71},
	{"coral", 255, 127, 80},
	{"orange", 255, 165, 0},
	{"darkorange", 255, 140, 0},
	{"gold", 255, 215, 0},
	{"goldenrod", 218, 165, 32},
	{"yellow", 255, 255, 0},
	{"olive", 128, 128, 0},
	{"green", 0, 128, 0},
	{"limegreen", 50, 205, 50},
	{"mediumseagreen", 60, 179, 113},
	{"seagreen", 46, 139, 87},
	{"teal", 0, 128, 128},
	{"lightseagreen", 32, 178, 170},
	{"turquoise", 64, 224, 208},
	{"cyan", 0, 255, 255},
	{"steelblue", 70, 130, 180},
	{"dodgerblue", 30, 144, 255},
	{"royalblue", 65, 105, 225},
	{"blue", 0, 0, 255},
	{"navy", 0, 0, 128},
	{"slateblue", 106, 90, 205},
	{"mediumpurple", 147, 112, 219},
	{"blueviolet", 138, 43, 226},
	{"purple", 128, 0, 128},
	{"orchid", 218, 112, 214},
	{"hotpink", 255, 105, 180},
	{"deeppink", 255, 20, 147},
	{"pink", 255, 192, 203},
	{"brown", 165, 42, 42},
	{"chocolate", 210, 105, 30},
}

// cssColorName returns the CSS color name nearest to a #RRGGBB value, or
// "" when hex is not one.
func cssColorName(hex string) string {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return ""
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return ""
	}
	r, g, b := int(v>>16), int(v>>8&0xff), int(v&0xff)

	best, bestDist := "", -1
	for _, c := range cssColors {
		dr, dg, db := r-c.r, g-c.g, b-c.b
		if d := dr*dr + dg*dg + db*db; bestDist < 0 || d < bestDist {
			best, bestDist = c.name, d
		}
	}
	return best
}
