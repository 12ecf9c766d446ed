// Command rainbowctl is the thin CLI surface over the framing layer:
// `encode` turns a file into a sequence of packet_<i>.http files,
// `decode` recovers one chunk's plaintext from a single packet file.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/faanross/rainbow/internal/codec"
	"github.com/faanross/rainbow/internal/framing"
	"github.com/faanross/rainbow/internal/rng"
	"github.com/faanross/rainbow/internal/scrypto"
)

// resolvePassword returns the octet-codec passphrase: the hidden
// terminal prompt when promptPassword is set (password is ignored in
// that case), otherwise the plain --password flag value verbatim.
func resolvePassword(password string, promptPassword bool) (string, error) {
	if !promptPassword {
		return password, nil
	}
	pw, err := scrypto.GetSecurePassword("Passphrase: ", int(os.Stdin.Fd()))
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

const (
	exitOK = 0
	exitUsage = 1
	exitIO = 2
	exitCodecFail = 3
)

// fixedSalt derives a reproducible octet-codec key from a passphrase
// across separate encode/decode invocations of this CLI without
// having to persist a salt file alongside the packets. A real
// deployment would carry the salt in its own out-of-band channel;
// this is a CLI-level simplification.
var fixedSalt = []byte("rainbowctl-fixed-salt-v1")

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(exitUsage)
	}

	switch os.Args[1] {
	case "encode":
		os.Exit(runEncode(os.Args[2:]))
	case "decode":
		os.Exit(runDecode(os.Args[2:]))
	default:
		usage()
		os.Exit(exitUsage)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: rainbowctl encode --input PATH --output DIR [--client] [--mime-type STR] [--password PASS | --prompt-password]")
	fmt.Fprintln(os.Stderr, " rainbowctl decode --input FILE --output FILE --index N [--client] [--password PASS | --prompt-password]")
}

func octetKey(password string) []byte {
	if password == "" {
		return make([]byte, 32)
	}
	return scrypto.DeriveKey([]byte(password), fixedSalt)
}

func runEncode(args []string) int {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	input := fs.String("input", "", "path to input file")
	output := fs.String("output", "", "output directory for packet_<i>.http files")
	client := fs.Bool("client", false, "author requests instead of responses")
	mimeType := fs.String("mime-type", "", "override the randomly chosen MIME type")
	password := fs.String("password", "", "passphrase for the octet codec (blank: zero key)")
	promptPassword := fs.Bool("prompt-password", false, "prompt for the passphrase with hidden terminal input instead of --password")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *input == "" || *output == "" {
		usage()
		return exitUsage
	}

	pw, err := resolvePassword(*password, *promptPassword)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ cannot read passphrase: %v\n", err)
		return exitIO
	}

	payload, err := os.ReadFile(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ cannot read input: %v\n", err)
		return exitIO
	}

	if err := os.MkdirAll(*output, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "❌ cannot create output directory: %v\n", err)
		return exitIO
	}

	reg, err := codec.NewDefaultRegistry(octetKey(pw), rng.Default)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ registry construction failed: %v\n", err)
		return exitCodecFail
	}

	opts := framing.Options{MIME: *mimeType}
	packets, expected, err := framing.EncodeWrite(payload, *client, opts, reg, rng.Default)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ encode failed: %v\n", err)
		return exitCodecFail
	}

	fmt.Printf("\n📦 Encoding %d bytes into %d packet(s)\n", len(payload), len(packets))
	for i, packet := range packets {
		name := filepath.Join(*output, fmt.Sprintf("packet_%d.http", i))
		if err := os.WriteFile(name, packet, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "❌ cannot write %s: %v\n", name, err)
			return exitIO
		}
		fmt.Printf(" wrote %s (%d bytes, expected reply ~%d)\n", name, len(packet), expected[i])
	}

	fmt.Printf("✅ done\n")
	return exitOK
}

func runDecode(args []string) int {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	input := fs.String("input", "", "path to a single packet_<i>.http file")
	output := fs.String("output", "", "path to write recovered chunk bytes")
	index := fs.Int("index", 0, "this packet's chunk index")
	client := fs.Bool("client", false, "the caller is the client reading a response")
	password := fs.String("password", "", "passphrase for the octet codec (blank: zero key)")
	promptPassword := fs.Bool("prompt-password", false, "prompt for the passphrase with hidden terminal input instead of --password")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *input == "" || *output == "" {
		usage()
		return exitUsage
	}

	pw, err := resolvePassword(*password, *promptPassword)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ cannot read passphrase: %v\n", err)
		return exitIO
	}

	packet, err := os.ReadFile(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ cannot read input: %v\n", err)
		return exitIO
	}

	reg, err := codec.NewDefaultRegistry(octetKey(pw), rng.Default)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ registry construction failed: %v\n", err)
		return exitCodecFail
	}

	data, expectedReplyLength, isReadEnd, err := framing.DecryptSingleRead(packet, uint32(*index), *client, reg, rng.Default)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ decode failed: %v\n", err)
		return exitCodecFail
	}

	if err := os.WriteFile(*output, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "❌ cannot write output: %v\n", err)
		return exitIO
	}

	fmt.Printf("\n📥 Decoded %d bytes from %s\n", len(data), *input)
	fmt.Printf(" expected reply length: ~%d\n", expectedReplyLength)
	fmt.Printf(" is_read_end: %v\n", isReadEnd)
	fmt.Printf("✅ done\n")
	return exitOK
}
