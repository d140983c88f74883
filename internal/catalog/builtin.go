// Package catalog provides the built-in keyword catalogs and loads custom
// ones from YAML or TOML files.
package catalog

import "fqc-report-go/internal/classify"

const (
	Standard = "standard"
	Reduced  = "reduced"
)

var castingKeywords = []string{
	"MICRO BUBBLES", "COIL MISALIGNMENT", "DENT ON RESIN", "DUST INSIDE RESIN", "RESIN CURING ISSUE",
	"SHORT FILL OF RESIN", "SPM REJECTION", "TIGHT FIT FOR CHARGE",
}

var assemblyKeywords = []string{
	"BLACK GLUE", "ULTRAHUMAN TEXT SMUDGED", "WHITE PATCH ON INSERT", "WHITE PATCH ON PCB",
	"WHITE PATCH ON TAPE NEAR BATTERY", "WRONG RX COIL",
}

var polishingKeywords = []string{
	"SHELL COATING REMOVED", "SIDE SCRATCH", "SIDE SCRATCH(EMERY)",
	"IMPROPER RESIN FINISH", "RESIN DAMAGE", "LOOSE FITTING ON CHARGER",
	"RX COIL SCRACTH", "SCRATCHES ON RESIN", "UNEVEN POLISHING",
	"SCRATCHES ON SHELL & SIDE SHELL",
}

var shellKeywords = []string{
	"BLACK MARKS ON SHELL", "DENT ON SHELL", "DISCOLORATION", "IRREGULAR SHELL SHAPE",
	"SHELL COATING ISSUE", "WHITE MARKS ON SHELL",
}

var functionalKeywords = []string{
	"100% ISSUE", "3 SENSOR ISSUE", "BATTERY ISSUE", "BLUETOOTH HEIGHT ISSUE", "CE TAPE ISSUE",
	"CHARGING CODE ISSUE", "COIL THICKNESS ISSUE/BATTERY THICKNESS", "COMPONENT HEIGHT ISSUE",
	"CURRENT ISSUE", "DISCONNECTING ISSUE", "HRS BUBBLE", "HRS COATING HEIGHT ISSUE",
	"HRS DOUBLE LIGHT ISSUE", "NO NOTIFICATION IN CDT", "NOT ADVERTISING (WINGLESS PCB)",
	"NOT CHARGING", "SENSOR ISSUE", "STC ISSUE",
}

type variant struct {
	categories []classify.Category
	display    []string
}

// builtins maps a variant name to its categories in classification order.
// The standard report lists sections alphabetically.
var builtins = map[string]variant{
	Standard: {
		categories: []classify.Category{
			{Name: "assembly", Keywords: assemblyKeywords},
			{Name: "casting", Keywords: castingKeywords},
			{Name: "polishing", Keywords: polishingKeywords},
			{Name: "shell", Keywords: shellKeywords},
			{Name: "functional", Keywords: functionalKeywords},
		},
		display: []string{"assembly", "casting", "functional", "polishing", "shell"},
	},
	Reduced: {
		categories: []classify.Category{
			{Name: "casting", Keywords: castingKeywords},
			{Name: "shell", Keywords: shellKeywords},
		},
	},
}

// Builtin returns a fresh catalog for a built-in variant.
func Builtin(name string) (*classify.Catalog, bool) {
	v, ok := builtins[name]
	if !ok {
		return nil, false
	}
	c := classify.MustCatalog(v.categories...)
	if v.display != nil {
		var err error
		if c, err = c.WithDisplayOrder(v.display...); err != nil {
			panic(err)
		}
	}
	return c, true
}

// BuiltinNames lists the built-in variants.
func BuiltinNames() []string {
	return []string{Standard, Reduced}
}
