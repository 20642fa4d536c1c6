/*package parse reads the .config files used by descqa. Config files contain
a single [section] header followed by Name = value assignments, with '#'
starting a comment. Variable names are case-insensitive.*/
package parse

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type varType int

const (
	intVar varType = iota
	floatVar
	stringVar
	boolVar
	intsVar
	floatsVar
	stringsVar
)

func (v varType) String() string {
	switch v {
	case intVar:
		return "int"
	case floatVar:
		return "float"
	case stringVar:
		return "string"
	case boolVar:
		return "bool"
	case intsVar:
		return "int list"
	case floatsVar:
		return "float list"
	case stringsVar:
		return "string list"
	}
	panic("Impossible")
}

// binding connects a config variable name to the pointer it writes to.
type binding struct {
	typ      varType
	required bool
	set      bool
	conv     func(string) bool
}

// ConfigVars is a registry of typed config variables for one config file
// type. Variables are registered through the Int, Float, String, Bool and
// list methods, then filled in by ReadConfig.
type ConfigVars struct {
	name     string
	order    []string
	bindings map[string]*binding
}

// NewConfigVars creates an empty registry for config files whose section
// header is [name].
func NewConfigVars(name string) *ConfigVars {
	return &ConfigVars{name: name, bindings: map[string]*binding{}}
}

func (vars *ConfigVars) add(name string, typ varType, conv func(string) bool) {
	key := strings.ToLower(name)
	vars.order = append(vars.order, key)
	vars.bindings[key] = &binding{typ: typ, conv: conv}
}

func (vars *ConfigVars) Int(ptr *int64, name string, value int64) {
	*ptr = value
	vars.add(name, intVar, func(s string) bool {
		i, err := strconv.Atoi(s)
		if err != nil {
			return false
		}
		*ptr = int64(i)
		return true
	})
}

func (vars *ConfigVars) Float(ptr *float64, name string, value float64) {
	*ptr = value
	vars.add(name, floatVar, func(s string) bool {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return false
		}
		*ptr = f
		return true
	})
}

func (vars *ConfigVars) String(ptr *string, name string, value string) {
	*ptr = value
	vars.add(name, stringVar, func(s string) bool {
		*ptr = strings.Trim(s, " ")
		return true
	})
}

func (vars *ConfigVars) Bool(ptr *bool, name string, value bool) {
	*ptr = value
	vars.add(name, boolVar, func(s string) bool {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return false
		}
		*ptr = b
		return true
	})
}

func (vars *ConfigVars) Ints(ptr *[]int64, name string, value []int64) {
	*ptr = value
	vars.add(name, intsVar, func(s string) bool {
		toks := splitList(s)
		out := []int64{}
		for _, tok := range toks {
			i, err := strconv.Atoi(tok)
			if err != nil {
				return false
			}
			out = append(out, int64(i))
		}
		*ptr = out
		return true
	})
}

func (vars *ConfigVars) Floats(ptr *[]float64, name string, value []float64) {
	*ptr = value
	vars.add(name, floatsVar, func(s string) bool {
		toks := splitList(s)
		out := []float64{}
		for _, tok := range toks {
			f, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return false
			}
			out = append(out, f)
		}
		*ptr = out
		return true
	})
}

func (vars *ConfigVars) Strings(ptr *[]string, name string, value []string) {
	*ptr = value
	vars.add(name, stringsVar, func(s string) bool {
		*ptr = splitList(s)
		return true
	})
}

// Require marks previously-registered variables as required. ReadConfig
// returns an error if a required variable is not assigned in the file.
func (vars *ConfigVars) Require(names ...string) {
	for _, name := range names {
		b, ok := vars.bindings[strings.ToLower(name)]
		if !ok {
			panic(fmt.Sprintf("Require called on unregistered variable '%s'.",
				name))
		}
		b.required = true
	}
}

func splitList(s string) []string {
	toks := strings.Split(s, ",")
	for i := range toks {
		toks[i] = strings.Trim(toks[i], " ")
	}
	return toks
}

// ReadConfig reads the config file fname and fills in every registered
// variable that the file assigns. Unknown variables, duplicate assignments,
// type mismatches, and missing required variables are all reported as
// errors naming the offending file and line.
func ReadConfig(fname string, vars *ConfigVars) error {
	bs, err := os.ReadFile(fname)
	if err != nil {
		return err
	}

	lines, lineNums := cleanLines(strings.Split(string(bs), "\n"))

	if len(lines) == 0 || lines[0] != fmt.Sprintf("[%s]", vars.name) {
		return fmt.Errorf("I expected the config file %s to start with the "+
			"header [%s], but didn't find it.", fname, vars.name)
	}
	lines, lineNums = lines[1:], lineNums[1:]

	for i, line := range lines {
		eq := strings.Index(line, "=")
		if eq <= 0 {
			return fmt.Errorf("I could not parse line %d of the config "+
				"file %s because it does not take the form of a variable "+
				"assignment.", lineNums[i], fname)
		}

		name := strings.ToLower(strings.Trim(line[:eq], " "))
		val := strings.Trim(line[eq+1:], " ")

		b, ok := vars.bindings[name]
		if !ok {
			return fmt.Errorf("Line %d of the config file %s assigns a "+
				"value to the variable '%s', but config files of type %s "+
				"don't have that variable.", lineNums[i], fname, name,
				vars.name)
		}
		if b.set {
			return fmt.Errorf("Line %d of the config file %s assigns a "+
				"value to the variable '%s', which was already assigned "+
				"earlier in the file.", lineNums[i], fname, name)
		}
		if !b.conv(val) {
			return fmt.Errorf("I could not parse line %d of the config "+
				"file %s because '%s' expects values of type %s and '%s' "+
				"cannot be converted to one.", lineNums[i], fname, name,
				b.typ.String(), val)
		}
		b.set = true
	}

	for _, name := range vars.order {
		b := vars.bindings[name]
		if b.required && !b.set {
			return fmt.Errorf("The config file %s does not assign a value "+
				"to the required variable '%s'.", fname, name)
		}
	}

	return nil
}

// cleanLines strips comments and blank lines, returning the surviving lines
// along with their 1-indexed line numbers in the original file.
func cleanLines(raw []string) ([]string, []int) {
	lines, lineNums := []string{}, []int{}
	for i, line := range raw {
		if comment := strings.Index(line, "#"); comment != -1 {
			line = line[:comment]
		}
		line = strings.Trim(line, " \t\r")
		if len(line) == 0 {
			continue
		}
		lines = append(lines, line)
		lineNums = append(lineNums, i+1)
	}
	return lines, lineNums
}
