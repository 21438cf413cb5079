// Command browser fetches a single http:// URL, parses the response
// body as HTML, and prints the resulting DOM tree.
package main

import (
	"fmt"
	"os"

	"github.com/lukehoban/saba-go/browser"
	"github.com/lukehoban/saba-go/dom"
	"github.com/lukehoban/saba-go/log"
	"github.com/lukehoban/saba-go/transport"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: browser <http-url>")
		os.Exit(1)
	}

	raw := os.Args[1]
	u, err := dom.ParseURL(raw)
	if err != nil {
		log.Errorf("%s: %v", raw, err)
		os.Exit(1)
	}

	client := transport.NewClient()
	resp, err := client.Get(u.Host, u.Port, u.Path)
	if err != nil {
		log.Errorf("failed to fetch %s: %v", raw, err)
		os.Exit(1)
	}

	b := browser.NewBrowser()
	page := b.CurrentPage()
	fmt.Println(page.ReceiveResponse(resp))
}
