// Command htmldump runs the HTML normalizer over a file or stdin and
// prints whichever parts of the result the caller asked for.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"mailhtml/htmlparse"
	"mailhtml/imgsniff"
	"mailhtml/urlx"
)

func main() {
	dumpTree := flag.Bool("dump", false, "print the tag tree as a pre-order dump")
	showText := flag.Bool("text", false, "print the normalized visible text")
	showURLs := flag.Bool("urls", false, "print every discovered URL")
	showImages := flag.Bool("images", false, "print every discovered image")
	showExceptions := flag.Bool("exceptions", false, "print invisible-text and displayed-URL exceptions")
	showFlags := flag.Bool("flags", false, "print the document-level anomaly flags")
	flag.Parse()

	log.SetFlags(0)

	var data []byte
	var err error
	if args := flag.Args(); len(args) > 0 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		log.Fatalf("htmldump: %v", err)
	}

	var urls []*urlx.URL
	doc := htmlparse.ProcessPart(data, htmlparse.WithURLSink(func(u *urlx.URL) {
		urls = append(urls, u)
	}))

	none := !*dumpTree && !*showText && !*showURLs && !*showImages && !*showExceptions && !*showFlags
	if none || *showText {
		fmt.Println(string(doc.ParsedContent()))
	}
	if *dumpTree {
		printTree(doc.Root, 0)
	}
	if *showURLs {
		for _, u := range urls {
			fmt.Printf("url: %s\n", u.String)
		}
	}
	if *showImages {
		for _, img := range doc.Images {
			fmt.Printf("image: src=%q width=%d height=%d flags=%d\n", img.Src, img.Width, img.Height, img.Flags)
			if img.Embedded == nil || len(img.Embedded.Payload) == 0 {
				continue
			}
			if avg, err := imgsniff.AverageColor(img.Embedded.Payload); err == nil {
				fmt.Printf("  swatch: #%02x%02x%02x\n", avg.R, avg.G, avg.B)
			}
		}
	}
	if *showExceptions {
		for _, exc := range doc.Exceptions {
			kind := "invisible"
			if exc.Type == htmlparse.ExceptionURL {
				kind = "url"
			}
			fmt.Printf("%s: [%d,%d) tag=%s\n", kind, exc.Pos, exc.Pos+exc.Len, exc.Tag.Name)
		}
	}
	if *showFlags {
		fmt.Printf("flags: %#x\n", uint32(doc.Flags))
	}
}

func printTree(tag *htmlparse.Tag, depth int) {
	if tag == nil {
		return
	}
	fmt.Println(strings.Repeat("  ", depth) + tag.Name)
	for _, c := range tag.Children {
		printTree(c, depth+1)
	}
}
