// graft-shell is an interactive tester for the adapter runtime. It registers
// a couple of demo native types and exposes the runtime's operations (new,
// call, cast, cmp, clone, release) as line commands.
package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/graft-runtime/graft"
)

// Counter is a simple native type for testing. It converts to every scalar
// kind and orders against integers and other counters.
type Counter struct {
	value int64
}

func (c *Counter) ToBool() bool      { return c.value != 0 }
func (c *Counter) ToInt() int64      { return c.value }
func (c *Counter) ToDouble() float64 { return float64(c.value) }
func (c *Counter) ToString() string  { return strconv.FormatInt(c.value, 10) }

func (c *Counter) CompareInt(n int64) int {
	switch {
	case c.value < n:
		return -1
	case c.value > n:
		return 1
	}
	return 0
}

func (c *Counter) Compare(other *Counter) int { return c.CompareInt(other.value) }

// Sealed has no constructor and no conversions; it exists to exercise the
// failure paths.
type Sealed struct{}

type shell struct {
	rt      *graft.Runtime
	objects map[string]*graft.Object
	counts  map[string]int
	out     *bufio.Writer
}

func main() {
	rt := graft.New()
	if err := registerDemoClasses(rt); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	sh := &shell{
		rt:      rt,
		objects: make(map[string]*graft.Object),
		counts:  make(map[string]int),
		out:     bufio.NewWriter(os.Stdout),
	}
	defer sh.out.Flush()

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			sh.out.Flush()
			fmt.Print("graft> ")
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		if err := sh.dispatch(line); err != nil {
			sh.out.Flush()
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			if !interactive {
				os.Exit(1)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "error reading input: %v\n", err)
		os.Exit(1)
	}
}

func registerDemoClasses(rt *graft.Runtime) error {
	counter, err := graft.RegisterClass[Counter](rt, "Counter", graft.Def[Counter]{
		New:  func() Counter { return Counter{} },
		Copy: func(src *Counter) Counter { return *src },
		Methods: map[string]any{
			"get":  func(c *Counter) int64 { return c.value },
			"set":  func(c *Counter, v int64) { c.value = v },
			"incr": func(c *Counter) int64 { c.value++; return c.value },
			"add":  func(c *Counter, n int64) int64 { c.value += n; return c.value },
		},
	})
	if err != nil {
		return err
	}
	if _, err := rt.DefineSubclass("StepCounter", counter); err != nil {
		return err
	}
	_, err = graft.RegisterClass[Sealed](rt, "Sealed", graft.Def[Sealed]{})
	return err
}

func (sh *shell) dispatch(line string) error {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "help":
		sh.printHelp()
		return nil
	case "classes":
		return sh.cmdClasses(args)
	case "new":
		return sh.cmdNew(args)
	case "call":
		return sh.cmdCall(args)
	case "cast":
		return sh.cmdCast(args)
	case "cmp":
		return sh.cmdCompare(args)
	case "clone":
		return sh.cmdClone(args)
	case "retain":
		return sh.cmdRetain(args)
	case "release":
		return sh.cmdRelease(args)
	case "objects":
		return sh.cmdObjects(args)
	}
	return fmt.Errorf("unknown command %q (try help)", cmd)
}

func (sh *shell) printHelp() {
	fmt.Fprint(sh.out, `commands:
  classes                      list registered classes and capabilities
  new <Class>                  create an instance, prints its handle
  call <handle> <method> [..]  invoke a method
  cast <handle> <kind>         cast to bool|int|double|string|array
  cmp <a> <b>                  three-way compare of two operands
  clone <handle>               duplicate an instance
  retain <handle>              add a reference
  release <handle>             drop a reference
  objects                      list live handles
  quit
operands are handles, integers, floats, true/false, null, or bare strings.
`)
}

func (sh *shell) cmdClasses(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("usage: classes")
	}
	for _, name := range sh.rt.ClassNames() {
		class, _ := sh.rt.LookupClass(name)
		fmt.Fprintf(sh.out, "%s\t%s\n", name, class.Handlers().Caps)
	}
	return nil
}

func (sh *shell) cmdNew(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: new <Class>")
	}
	class, ok := sh.rt.LookupClass(args[0])
	if !ok {
		return fmt.Errorf("unknown class %q", args[0])
	}
	obj, err := sh.rt.NewInstance(class)
	if err != nil {
		return err
	}
	fmt.Fprintln(sh.out, sh.adopt(obj))
	return nil
}

func (sh *shell) cmdCall(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: call <handle> <method> [args...]")
	}
	obj, err := sh.lookup(args[0])
	if err != nil {
		return err
	}
	callArgs := make([]graft.Value, 0, len(args)-2)
	for _, raw := range args[2:] {
		callArgs = append(callArgs, sh.parseOperand(raw))
	}
	res, err := sh.rt.CallMethod(obj, args[1], callArgs...)
	if err != nil {
		return err
	}
	if !res.IsUndef() && !res.IsNull() {
		fmt.Fprintln(sh.out, res.String())
	}
	return nil
}

func (sh *shell) cmdCast(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: cast <handle> <kind>")
	}
	kind, ok := graft.KindByName(args[1])
	if !ok {
		return fmt.Errorf("unknown kind %q", args[1])
	}
	v, err := sh.rt.Cast(sh.parseOperand(args[0]), kind)
	if err != nil {
		return err
	}
	fmt.Fprintln(sh.out, v.String())
	return nil
}

func (sh *shell) cmdCompare(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: cmp <a> <b>")
	}
	res, err := sh.rt.Compare(sh.parseOperand(args[0]), sh.parseOperand(args[1]))
	if err != nil {
		return err
	}
	fmt.Fprintln(sh.out, res)
	return nil
}

func (sh *shell) cmdClone(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: clone <handle>")
	}
	obj, err := sh.lookup(args[0])
	if err != nil {
		return err
	}
	dup, err := sh.rt.CloneObject(obj)
	if err != nil {
		return err
	}
	fmt.Fprintln(sh.out, sh.adopt(dup))
	return nil
}

func (sh *shell) cmdRetain(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: retain <handle>")
	}
	obj, err := sh.lookup(args[0])
	if err != nil {
		return err
	}
	sh.rt.Retain(obj)
	return nil
}

func (sh *shell) cmdRelease(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: release <handle>")
	}
	obj, err := sh.lookup(args[0])
	if err != nil {
		return err
	}
	if sh.rt.Release(obj) {
		delete(sh.objects, args[0])
		fmt.Fprintln(sh.out, "destroyed")
	}
	return nil
}

func (sh *shell) cmdObjects(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("usage: objects")
	}
	handles := make([]string, 0, len(sh.objects))
	for h := range sh.objects {
		handles = append(handles, h)
	}
	sort.Strings(handles)
	for _, h := range handles {
		fmt.Fprintf(sh.out, "%s\t%s\n", h, sh.objects[h].Class().Name)
	}
	return nil
}

// adopt stores an object under a fresh handle like counter1.
func (sh *shell) adopt(obj *graft.Object) string {
	base := strings.ToLower(obj.Class().Name)
	sh.counts[base]++
	handle := fmt.Sprintf("%s%d", base, sh.counts[base])
	sh.objects[handle] = obj
	return handle
}

func (sh *shell) lookup(handle string) (*graft.Object, error) {
	obj, ok := sh.objects[handle]
	if !ok {
		return nil, fmt.Errorf("no such object %q", handle)
	}
	return obj, nil
}

// parseOperand turns a token into a value: a live handle, a numeric or
// boolean literal, null, or failing all of that a plain string.
func (sh *shell) parseOperand(tok string) graft.Value {
	if obj, ok := sh.objects[tok]; ok {
		return graft.ObjectValue(obj)
	}
	switch tok {
	case "null":
		return graft.Null()
	case "true":
		return graft.Bool(true)
	case "false":
		return graft.Bool(false)
	}
	if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return graft.Int(n)
	}
	if d, err := strconv.ParseFloat(tok, 64); err == nil {
		return graft.Double(d)
	}
	return graft.String(tok)
}
