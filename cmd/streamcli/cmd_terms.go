package main

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"

	weave "github.com/iov-one/vesting"
	"github.com/iov-one/vesting/x/stream"
)

func cmdHashTerms(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read a JSON serialized stream record from the input and print the hex encoded
digest that both parties must agree on to switch the stream to new terms.
`)
		fl.PrintDefaults()
	}
	var (
		idFl    = fl.Uint64("id", 0, "ID of the stream.")
		ppbFl   = fl.Uint64("ppb", 0, "New payment per block.")
		startFl = fl.Uint64("start", 0, "New start block.")
		stopFl  = fl.Uint64("stop", 0, "New stop block.")
	)
	fl.Parse(args)

	var s stream.Stream
	if err := json.NewDecoder(input).Decode(&s); err != nil {
		return fmt.Errorf("cannot decode stream: %s", err)
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid stream: %s", err)
	}
	tf := stream.Timeframe{StartBlock: *startFl, StopBlock: *stopFl}
	if err := tf.Validate(); err != nil {
		return fmt.Errorf("invalid terms: %s", err)
	}

	digest := stream.CommitmentDigest(*idFl, &s, *ppbFl, tf)
	_, err := fmt.Fprintln(output, hex.EncodeToString(digest[:]))
	return err
}

func cmdSignTerms(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read a hex encoded terms digest from the input and print its hex encoded
signature, made with your private key.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", defaultKeyPath(), keyUsage)
	)
	fl.Parse(args)

	key, err := readKey(*keyPathFl)
	if err != nil {
		return err
	}
	digest, err := readDigest(input)
	if err != nil {
		return err
	}
	sig, err := stream.SignTerms(key, digest)
	if err != nil {
		return fmt.Errorf("cannot sign: %s", err)
	}
	_, err = fmt.Fprintln(output, hex.EncodeToString(sig))
	return err
}

func cmdVerifyTerms(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read a hex encoded terms digest from the input and check that the given
signature was made by the owner of the signer address.
`)
		fl.PrintDefaults()
	}
	var (
		signerFl weave.Address
		sigFl    = fl.String("sig", "", "Hex encoded signature.")
	)
	fl.Var(&signerFl, "signer", "Address of the counterparty that signed the terms.")
	fl.Parse(args)

	sig, err := hex.DecodeString(*sigFl)
	if err != nil {
		return fmt.Errorf("cannot decode signature: %s", err)
	}
	digest, err := readDigest(input)
	if err != nil {
		return err
	}
	if !stream.ValidateSignature(digest[:], sig, signerFl) {
		return fmt.Errorf("signature does not match %s", signerFl)
	}
	_, err = fmt.Fprintln(output, "valid")
	return err
}

func readDigest(input io.Reader) ([32]byte, error) {
	var digest [32]byte
	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil && err != io.EOF {
		return digest, fmt.Errorf("cannot read digest: %s", err)
	}
	raw, err := hex.DecodeString(strings.TrimSpace(line))
	if err != nil {
		return digest, fmt.Errorf("cannot decode digest: %s", err)
	}
	if len(raw) != len(digest) {
		return digest, fmt.Errorf("invalid digest length: %d", len(raw))
	}
	copy(digest[:], raw)
	return digest, nil
}
