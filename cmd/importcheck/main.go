// Command importcheck parses a user or question upload offline and prints
// what the service would extract from it.
package main

import (
	"flag"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/mind-engage/mindengage-authoring/internal/importer"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("importcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	users := fs.Bool("users", false, "treat the file as a participant list")
	legacy := fs.Bool("legacy", false, "accept answer lines before the first question")
	noColor := fs.Bool("no-color", false, "disable colored output")
	limit := fs.Int64("max-bytes", 5<<20, "largest file accepted")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: importcheck [-users] [-legacy] FILE")
		return 2
	}
	path := fs.Arg(0)
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer f.Close()

	accept := importer.AcceptQuestions
	if *users {
		accept = importer.AcceptUsers
	}
	ctype := mime.TypeByExtension(filepath.Ext(path))
	text, err := importer.ReadUpload(f, filepath.Base(path), ctype, accept, *limit)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	p := printer{w: stdout, noColor: *noColor}
	if *users {
		p.users(importer.ParseUsers(text))
		return 0
	}
	recs, err := importer.ParseQuestions(text, importer.Options{LegacyAnswerGuard: *legacy})
	if err != nil {
		fmt.Fprintln(stderr, p.bad(err.Error()))
		return 1
	}
	p.questions(recs)
	return 0
}
