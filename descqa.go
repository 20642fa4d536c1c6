/*package descqa contains code for validating mock galaxy catalogs against
observational data sets.*/
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/nsevilla/descqa/cmd"
	"github.com/nsevilla/descqa/logging"
	"github.com/nsevilla/descqa/version"
)

var helpStrings = map[string]string{
	"colordist": `The colordist mode compares the color distributions of a
mock galaxy catalog against an observational data set. It writes quantile
files, a summary file, and CDF and PDF comparison figures into the output
directory named by the global config file.`,
	"summary": `The summary mode collects the quantile files written by
previous colordist runs and renders a figure comparing every catalog
against the observational data at once.`,

	"config":           new(cmd.GlobalConfig).ExampleConfig(),
	"colordist.config": cmd.ModeNames["colordist"].ExampleConfig(),
	"summary.config":   cmd.ModeNames["summary"].ExampleConfig(),
}

var modeDescriptions = `My help modes are:
descqa help
descqa help [ colordist | summary ]
descqa help [ config | colordist.config | summary.config ]

My validation modes are:
descqa colordist [flags] ____.config [____.colordist.config]
descqa summary   [flags] ____.config [____.summary.config]`

func main() {
	args := os.Args
	if len(args) <= 1 {
		fmt.Fprintf(
			os.Stderr, "I was not supplied with a mode.\nFor help, type "+
				"'./descqa help'.\n",
		)
		os.Exit(1)
	}

	if args[1] == "help" {
		switch len(args) - 2 {
		case 0:
			fmt.Println(modeDescriptions)
		case 1:
			text, ok := helpStrings[args[2]]
			if !ok {
				fmt.Printf("I don't recognize the help target '%s'\n", args[2])
			} else {
				fmt.Println(text)
			}
		default:
			fmt.Println("The help mode can only take a single argument.")
		}
		os.Exit(0)
	} else if args[1] == "version" {
		fmt.Printf("descqa version %s\n", version.SourceVersion)
		os.Exit(0)
	}

	mode, ok := cmd.ModeNames[args[1]]
	if !ok {
		fmt.Fprintf(
			os.Stderr, "You passed me the mode '%s', which I don't "+
				"recognize.\nFor help, type './descqa help'\n", args[1],
		)
		os.Exit(1)
	}

	flags := getFlags(args)
	initLogging(flags)

	config, ok := getConfig(args)
	_, gConfig, err := getGlobalConfig(args)
	if err != nil {
		log.Fatalf("Error running mode %s:\n%s\n", args[1], err.Error())
	}

	if ok {
		err = mode.ReadConfig(config)
	} else {
		err = mode.ReadConfig("")
	}
	if err != nil {
		log.Fatalf("Error running mode %s:\n%s\n", args[1], err.Error())
	}

	out, err := mode.Run(flags, gConfig)
	if err != nil {
		log.Fatalf("Error running mode %s:\n%s\n", args[1], err.Error())
	}

	for i := range out {
		fmt.Println(out[i])
	}
}

// getFlags returns the flag tokens from the command line arguments.
func getFlags(args []string) []string {
	return args[2 : len(args)-configNum(args)]
}

// initLogging sets the global logging mode from the command line flags.
func initLogging(flags []string) {
	for _, flag := range flags {
		switch flag {
		case "--performance-log":
			logging.Mode = logging.Performance
		case "--debug-log":
			logging.Mode = logging.Debug
		}
	}
}

// getGlobalConfig returns the name of the base config file from the command
// line arguments.
func getGlobalConfig(args []string) (string, *cmd.GlobalConfig, error) {
	name := os.Getenv("DESCQA_GLOBAL_CONFIG")
	if name != "" {
		if configNum(args) > 1 {
			return "", nil, fmt.Errorf("$DESCQA_GLOBAL_CONFIG has been " +
				"set, so you may only pass a single config file as a " +
				"parameter.")
		}

		config := &cmd.GlobalConfig{}
		err := config.ReadConfig(name)
		if err != nil {
			return "", nil, err
		}
		return name, config, nil
	}

	switch configNum(args) {
	case 0:
		return "", nil, fmt.Errorf("No config files provided in command " +
			"line arguments.")
	case 1:
		name = args[len(args)-1]
	case 2:
		name = args[len(args)-2]
	default:
		return "", nil, fmt.Errorf("Passed too many config files as arguments.")
	}

	config := &cmd.GlobalConfig{}
	err := config.ReadConfig(name)
	if err != nil {
		return "", nil, err
	}
	return name, config, nil
}

// getConfig returns the name of the mode-specific config file from the
// command line arguments.
func getConfig(args []string) (string, bool) {
	if os.Getenv("DESCQA_GLOBAL_CONFIG") != "" && configNum(args) == 1 {
		return args[len(args)-1], true
	} else if os.Getenv("DESCQA_GLOBAL_CONFIG") == "" &&
		configNum(args) == 2 {

		return args[len(args)-1], true
	}
	return "", false
}

// configNum returns the number of configuration files at the end of the
// argument list (up to 2).
func configNum(args []string) int {
	num := 0
	for i := len(args) - 1; i >= 0; i-- {
		if isConfig(args[i]) {
			num++
		} else {
			break
		}
	}
	return num
}

// isConfig returns true if the given string is a config file name.
func isConfig(s string) bool {
	return len(s) >= 7 && s[len(s)-7:] == ".config"
}
