// Command asn1dump is a thin harness for exercising the decoder and
// pretty-printer against a BER file from the shell, e.g. to reproduce a
// failing input by hand: not a shipped CLI.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/asn1kit/asn1kit/ber"
	"github.com/asn1kit/asn1kit/dder"
)

func main() {
	data, err := readInput(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	elt, err := ber.Decode(data)
	if err != nil {
		log.Fatalf("decode: %v", err)
	}

	text, err := dder.Pretty(elt)
	if err != nil {
		log.Fatalf("pretty: %v", err)
	}
	fmt.Println(text)
}

// readInput reads a BER file named on the command line, or stdin if no
// argument was given.
func readInput(args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}
