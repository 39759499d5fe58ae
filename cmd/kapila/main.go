// Kapila CLI - the main entry point for running Kapila program images
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"

	"github.com/chazu/kapila/manifest"
	"github.com/chazu/kapila/vm"
	"github.com/chazu/kapila/vm/wire"
	"github.com/chazu/kapila/wordstore"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("kapila")

func main() {
	verbose := flag.Bool("v", false, "Verbose output")
	strict := flag.Bool("strict", false, "Fail when an operation substitutes a benign default")
	showStack := flag.Bool("show-stack", false, "Dump the operand stack after the run")
	manifestDir := flag.String("manifest", "", "Directory containing kapila.toml (default: walk up from the working directory)")
	storePath := flag.String("store", "", "Word store database path (overrides the manifest)")
	importImage := flag.String("import", "", "Import word definitions from a program image into the store")
	listWords := flag.Bool("words", false, "List stored words")
	deleteWord := flag.String("delete-word", "", "Delete a stored word")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: kapila [options] [image.kpi ...]\n\n")
		fmt.Fprintf(os.Stderr, "Runs Kapila program images in one session, left to right.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  kapila main.kpi                # Run a program image\n")
		fmt.Fprintf(os.Stderr, "  kapila -show-stack main.kpi    # Run, then dump the operand stack\n")
		fmt.Fprintf(os.Stderr, "  kapila -strict main.kpi        # Surface benign-default substitutions\n")
		fmt.Fprintf(os.Stderr, "  kapila -import words.kpi       # Store the image's word definitions\n")
		fmt.Fprintf(os.Stderr, "  kapila -words                  # List stored words\n")
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	// Locate the manifest
	var mf *manifest.Manifest
	var err error
	if *manifestDir != "" {
		mf, err = manifest.Load(*manifestDir)
		if err != nil {
			fail("%v", err)
		}
	} else if wd, werr := os.Getwd(); werr == nil {
		mf, err = manifest.FindAndLoad(wd)
		if err != nil {
			fail("%v", err)
		}
	}
	if mf != nil {
		log.Infof("using manifest in %s (project %q)", mf.Dir, mf.Project.Name)
	}

	// Word store path: flag overrides manifest overrides default
	dbPath := *storePath
	if dbPath == "" && mf != nil {
		dbPath = mf.StorePath()
	}
	if dbPath == "" {
		dbPath, err = wordstore.DefaultPath()
		if err != nil {
			fail("%v", err)
		}
	}

	// Store maintenance modes run and exit before any session starts.
	if *importImage != "" {
		runImport(dbPath, *importImage)
		return
	}
	if *listWords {
		runListWords(dbPath)
		return
	}
	if *deleteWord != "" {
		runDeleteWord(dbPath, *deleteWord)
		return
	}

	images := flag.Args()
	if len(images) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	opts := vm.Options{Strict: *strict}
	if mf != nil {
		opts.StackCapacity = mf.Runtime.StackCapacity
		opts.MaxHeapBytes = mf.Runtime.MaxHeapBytes
		opts.MaxCallDepth = mf.Runtime.MaxCallDepth
		opts.Strict = opts.Strict || mf.Runtime.Strict
		opts.TrueToken = mf.Output.TrueToken
		opts.FalseToken = mf.Output.FalseToken
	}

	session := vm.NewSessionWith(opts)
	dict := loadDictionary(dbPath)

	for _, path := range images {
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			fail("cannot read %s: %v", path, rerr)
		}
		img, derr := wire.Decode(data)
		if derr != nil {
			fail("%s: %v", path, derr)
		}
		// Image-carried words shadow stored ones for this run.
		for _, w := range img.Words {
			dict.Define(w.Name, wire.ProgramFromInstructions(w.Code))
		}
		log.Infof("running %s (%d words, %d instructions)", path, len(img.Words), len(img.Main))
		if runErr := session.Run(img.MainProgram(), dict); runErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, runErr)
			session.Finalize()
			os.Exit(1)
		}
	}

	if *showStack {
		fmt.Println(session.FormatStack())
	}
	session.Finalize()
}

// loadDictionary loads stored words when a store database already exists.
// A missing database is not an error; runs simply start with the image's
// own words.
func loadDictionary(dbPath string) *vm.Dictionary {
	if _, err := os.Stat(dbPath); err != nil {
		log.Infof("no word store at %s", dbPath)
		return vm.NewDictionary()
	}
	store, err := wordstore.Open(dbPath)
	if err != nil {
		fail("%v", err)
	}
	defer store.Close()
	dict, err := store.Dictionary()
	if err != nil {
		fail("%v", err)
	}
	log.Infof("loaded %d stored words", dict.Len())
	return dict
}

// runImport stores all word definitions from an image file.
func runImport(dbPath, imagePath string) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		fail("cannot read %s: %v", imagePath, err)
	}
	img, err := wire.Decode(data)
	if err != nil {
		fail("%s: %v", imagePath, err)
	}
	store, err := wordstore.Open(dbPath)
	if err != nil {
		fail("%v", err)
	}
	defer store.Close()
	n, err := store.ImportImage(img)
	if err != nil {
		fail("%v", err)
	}
	fmt.Printf("Imported %d words into %s\n", n, dbPath)
}

// runListWords prints the stored word names.
func runListWords(dbPath string) {
	if _, err := os.Stat(dbPath); err != nil {
		fmt.Printf("No word store at %s\n", dbPath)
		return
	}
	store, err := wordstore.Open(dbPath)
	if err != nil {
		fail("%v", err)
	}
	defer store.Close()
	names, err := store.List()
	if err != nil {
		fail("%v", err)
	}
	if len(names) == 0 {
		fmt.Println("No words stored")
		return
	}
	for _, name := range names {
		fmt.Println(name)
	}
}

// runDeleteWord removes one stored word.
func runDeleteWord(dbPath, name string) {
	store, err := wordstore.Open(dbPath)
	if err != nil {
		fail("%v", err)
	}
	defer store.Close()
	if err := store.Delete(name); err != nil {
		if errors.Is(err, wordstore.ErrNotFound) {
			fail("word %q not found", name)
		}
		fail("%v", err)
	}
	fmt.Printf("Deleted %q\n", name)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
