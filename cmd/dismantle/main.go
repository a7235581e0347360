package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"github.com/nf6x/dismantle"
	cli "github.com/urfave/cli/v2"
)

// parseKeyValue splits an "ADDRESS=NAME"/"PORT=NAME" token, the single-token
// collapse of the Python CLI's two-argument --label/--port flags (see
// SPEC_FULL.md §4.8).
func parseKeyValue(tok string) (int, string, error) {
	parts := strings.SplitN(tok, "=", 2)
	if len(parts) != 2 || parts[1] == "" {
		return 0, "", fmt.Errorf("expected ADDRESS=NAME, got %q", tok)
	}
	n, err := strconv.ParseInt(parts[0], 0, 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid numeric key in %q: %w", tok, err)
	}
	return int(n), parts[1], nil
}

func run(c *cli.Context) error {
	if c.Bool("list_cpus") {
		for _, tag := range dismantle.CPUTags {
			fmt.Println(tag)
		}
		return nil
	}

	cpuTag := c.String("cpu")
	if cpuTag == "" {
		return cli.Exit("missing required flag -c/--cpu", 1)
	}
	info, err := dismantle.Lookup(cpuTag)
	if err != nil {
		return cli.Exit(err, 1)
	}

	if c.Args().Len() < 1 {
		return cli.Exit("missing ROM file argument", 1)
	}
	rom, err := ioutil.ReadFile(c.Args().First())
	if err != nil {
		return cli.Exit(fmt.Sprintf("could not read ROM file: %v", err), 1)
	}

	// Per spec.md §3/§6 and original_source/dismantle.py:122-138, the CPU's
	// default label/port table is a fallback for when auto-labelling is on
	// and the user supplied none of their own — never merged unconditionally
	// on top of a user-supplied map.
	labelTokens := c.StringSlice("label")
	labelMap := map[int]string{}
	if len(labelTokens) == 0 && c.Bool("auto_label") {
		labelMap = dismantle.CloneLabels(info.DefaultLabels)
	}
	for _, tok := range labelTokens {
		addr, name, err := parseKeyValue(tok)
		if err != nil {
			return cli.Exit(fmt.Sprintf("-l/--label: %v", err), 1)
		}
		labelMap[addr] = name
	}

	portTokens := c.StringSlice("port")
	portMap := map[int]string{}
	if len(portTokens) == 0 && c.Bool("auto_label") {
		portMap = dismantle.ClonePorts(info.DefaultPorts)
	}
	for _, tok := range portTokens {
		port, name, err := parseKeyValue(tok)
		if err != nil {
			return cli.Exit(fmt.Sprintf("-p/--port: %v", err), 1)
		}
		portMap[port] = name
	}

	store := dismantle.NewStore(rom, c.Int("base_address"), labelMap, portMap, info.DefaultLabels, info.DefaultPorts)

	for _, addr := range c.IntSlice("data8") {
		store.SetData8(addr, nil)
	}
	for _, addr := range c.IntSlice("data16") {
		store.SetData16(addr, nil)
	}

	entries := info.DefaultEntries
	if c.IsSet("entry") {
		entries = c.IntSlice("entry")
	}

	breakpoints := c.IntSlice("breakpoint")
	vectors := c.IntSlice("vector")

	decoder := info.NewDecoder(store)
	disasm := dismantle.NewDisassembler(store, decoder)
	if err := disasm.Disassemble(entries, c.Bool("auto_label"), false, nil, breakpoints, vectors); err != nil {
		return cli.Exit(err, 1)
	}

	fmt.Print(store.Listing(c.Bool("source")))
	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "dismantle"
	app.Usage = "Static disassembler for 8080/8085/Z80/1802 ROM images"
	app.ArgsUsage = "rom-file"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{Name: "list_cpus", Usage: "list supported CPU tags and exit"},
		&cli.StringFlag{Name: "cpu", Aliases: []string{"c"}, Usage: "CPU tag: 1802, 8080, 8085, z80"},
		&cli.IntFlag{Name: "base_address", Aliases: []string{"B"}, Usage: "memory address of the first ROM byte"},
		&cli.IntSliceFlag{Name: "entry", Aliases: []string{"e"}, Usage: "entry point address (repeatable)"},
		&cli.IntSliceFlag{Name: "breakpoint", Aliases: []string{"b"}, Usage: "address to stop traversal at (repeatable)"},
		&cli.BoolFlag{Name: "auto_label", Aliases: []string{"a"}, Usage: "auto-create labels for referenced addresses"},
		&cli.StringSliceFlag{Name: "label", Aliases: []string{"l"}, Usage: "ADDRESS=NAME label (repeatable)"},
		&cli.StringSliceFlag{Name: "port", Aliases: []string{"p"}, Usage: "PORT=NAME label (repeatable)"},
		&cli.IntSliceFlag{Name: "data8", Aliases: []string{"d"}, Usage: "address to classify as 8-bit data (repeatable)"},
		&cli.IntSliceFlag{Name: "data16", Aliases: []string{"w"}, Usage: "address to classify as 16-bit data (repeatable)"},
		&cli.IntSliceFlag{Name: "vector", Aliases: []string{"v"}, Usage: "address to classify as a code vector (repeatable)"},
		&cli.BoolFlag{Name: "source", Aliases: []string{"s"}, Usage: "emit bare assembler source instead of a listing"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
