// Command magicclassify is a developer convenience, not part of the
// compiler's required surface: it runs a pre-generated classifier's
// RunTests against stdin, for smoke-testing what magiccompile emits
// without setting up a plugin-loading mechanism.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/als123/libmimemagic/internal/sampleclassifier"
)

func main() {
	buf, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "magicclassify: reading stdin: %v\n", err)
		os.Exit(1)
	}

	var mime string
	result, err := sampleclassifier.RunTests(buf, &mime)
	switch result {
	case sampleclassifier.Match:
		fmt.Println(mime)
	case sampleclassifier.Error:
		fmt.Fprintf(os.Stderr, "magicclassify: %v\n", err)
		os.Exit(1)
	case sampleclassifier.Fail:
		fmt.Println("application/octet-stream")
	}
}
