package seed

// Package seed carries the built-in default catalog and user directory used
// to fill an empty deployment on first start.

import (
	"strconv"
	"strings"

	"libraryapi/internal/model"
)

// Entry is one line of the default catalog.
type Entry struct {
	Title    string
	Author   string
	Category string
	Copies   int
}

// catalogTSV is the default book list, one title per line:
// title <tab> copies <tab> category <tab> author. Blank categories or authors
// are kept as-is; copies defaults to 1 when missing or malformed.
const catalogTSV = `A.P.J Abdul Kalam	1	Biography	A.P.J. Abdul Kalam
11 Rules of Life	1	Self-Help	Jay Shetty
101 Panchatantra Stories	1	Children / Moral Stories	Vishnu Sharma
The Alchemist	1	Fiction / Inspirational	Paulo Coelho
And Then There Were None	1	Fiction / Mystery	Agatha Christie
Animal Farm	1	Fiction / Political Satire	George Orwell
As a Man Thinketh	1	Self-Help / Philosophy	James Allen
Attitude Is Everything	1	Self-Help / Motivational	Jeff Keller
Chanakya	1	Biography / Philosophy / History	R. Shamasastry
Dan Brown: Angels & Demons	1	Fiction / Thriller	Dan Brown
Everyday Vocabulary	7	Language Learning / Education	Norman Lewis
Get Started with SQL	2	Programming / Technical	Thomas Nield
High School English Grammar and Composition	4	Education / Language	Wren & Martin
How to Stop Worrying and Start Living	1	Self-Help / Motivational	Dale Carnegie
How to Win Friends & Influence People	1	Self-Help / Motivational	Dale Carnegie
I Am Malala	1	Biography / Inspirational	Malala Yousafzai
Ignited Minds	1	Self-Help / Inspirational	A.P.J. Abdul Kalam
Life of Pi	1	Fiction / Adventure	Yann Martel
Long Walk to Freedom	1	Biography / History	Nelson Mandela
Malgudi Stories	1	Fiction / Short Stories	R.K. Narayan
Man’s Search for Meaning	1	Self-Help / Psychology	Viktor E. Frankl
Manorama Yearbook 2020	2	Reference / General Knowledge	Manorama Publishing
Memory: How to Develop, Train and Use It	2	Self-Help / Skill Development	Harry Lorayne
Wings of Fire	1	Biography / Inspirational	A.P.J. Abdul Kalam`

// Catalog parses the embedded default book list.
func Catalog() []Entry {
	return ParseCatalog(catalogTSV)
}

// ParseCatalog parses tab-separated catalog text. Lines without a title are
// skipped; short lines are tolerated.
func ParseCatalog(tsv string) []Entry {
	lines := strings.Split(tsv, "\n")
	out := make([]Entry, 0, len(lines))
	for _, line := range lines {
		fields := strings.Split(line, "\t")
		title := strings.TrimSpace(fields[0])
		if title == "" {
			continue
		}

		e := Entry{Title: title, Copies: 1}
		if len(fields) > 1 {
			if n, err := strconv.Atoi(strings.TrimSpace(fields[1])); err == nil && n > 0 {
				e.Copies = n
			}
		}
		if len(fields) > 2 {
			e.Category = strings.TrimSpace(fields[2])
		}
		if len(fields) > 3 {
			e.Author = strings.TrimSpace(fields[3])
		}
		out = append(out, e)
	}
	return out
}

// Users returns the mock member directory.
func Users() []model.User {
	return []model.User{
		{ID: "student1", Name: "Alice Smith", Email: "alice.smith@example.com"},
		{ID: "student2", Name: "Bob Johnson", Email: "bob.johnson@example.com"},
		{ID: "student3", Name: "Charlie Brown", Email: "charlie.brown@example.com"},
		{ID: "student4", Name: "Diana Prince", Email: "diana.prince@example.com"},
	}
}
