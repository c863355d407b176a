package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "check":
		os.Exit(checkCmd(os.Args[2:], os.Stdin, os.Stdout, os.Stderr))
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `arrskema CLI

Usage:
  arrskema check [-items T1,T2,...] [-ordered T1,T2,...] [-min N] [-max N] [-length N]
                 [-unique] [-sparse] [-single] [-driver go-json|yaml|fastjson]
                 [-strict] [-abort-early] [-strip-unknown] [-json] [-lang en|ja] [-f file]

Element types: any, number, string, bool. Prefix with ! for required or - for
forbidden, suffix with @label to name a required element, e.g. !string@owner.

Exit status: 0 valid, 1 invalid, 2 usage or input error.`)
}
