package openlibrary

import (
	"bytes"
	"encoding/json"
)

// searchFields limits search.json documents to what mapping reads.
const searchFields = "key,title,author_name,cover_i,first_publish_year,language,subject,number_of_pages_median,edition_count"

// SearchOptions tunes a search.json query.
type SearchOptions struct {
	MaxResults int
	// Lang biases results toward a language without excluding others. Empty means no bias.
	Lang string
}

// Raw API response types (internal)

type rawSearchResponse struct {
	NumFound int      `json:"numFound"`
	Docs     []rawDoc `json:"docs"`
}

type rawDoc struct {
	Key                 string   `json:"key"`
	Title               string   `json:"title"`
	AuthorName          []string `json:"author_name"`
	CoverI              int      `json:"cover_i"`
	FirstPublishYear    int      `json:"first_publish_year"`
	Language            []string `json:"language"`
	Subject             []string `json:"subject"`
	NumberOfPagesMedian int      `json:"number_of_pages_median"`
	EditionCount        int      `json:"edition_count"`
}

type rawWork struct {
	Key         string          `json:"key"`
	Title       string          `json:"title"`
	Description rawText         `json:"description"`
	Covers      []int           `json:"covers"`
	Subjects    []string        `json:"subjects"`
	Authors     []rawWorkAuthor `json:"authors"`
	Created     *rawTyped       `json:"created"`
}

type rawWorkAuthor struct {
	Author struct {
		Key string `json:"key"`
	} `json:"author"`
}

type rawTyped struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type rawEditions struct {
	Size    int          `json:"size"`
	Entries []rawEdition `json:"entries"`
}

type rawEdition struct {
	NumberOfPages int `json:"number_of_pages"`
	Languages     []struct {
		Key string `json:"key"`
	} `json:"languages"`
}

type rawSubject struct {
	Name      string           `json:"name"`
	WorkCount int              `json:"work_count"`
	Works     []rawSubjectWork `json:"works"`
}

type rawSubjectWork struct {
	Key     string `json:"key"`
	Title   string `json:"title"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
	CoverID          int      `json:"cover_id"`
	Subject          []string `json:"subject"`
	Subjects         []string `json:"subjects"`
	FirstPublishYear int      `json:"first_publish_year"`
	EditionCount     int      `json:"edition_count"`
}

type rawAuthor struct {
	Name string `json:"name"`
}

// rawText decodes OpenLibrary text fields, which arrive either as a plain
// string or as {"type": "/type/text", "value": "..."}. Other shapes decode as "".
type rawText string

func (t *rawText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] == 'n' {
		*t = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = rawText(s)
		return nil
	}

	var typed rawTyped
	if err := json.Unmarshal(data, &typed); err != nil {
		*t = ""
		return nil //nolint:nilerr // unknown shapes are treated as missing
	}
	*t = rawText(typed.Value)
	return nil
}
