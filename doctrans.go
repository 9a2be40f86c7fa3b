// Package doctrans translates office documents while preserving their structure.
//
// A document is extracted into one of two shapes (plain text or a table of
// sheets), every unit of text is sent to a translation Provider, the result
// is cleaned by a fixed normalization pipeline, and the same shape is
// rebuilt around the translated strings.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/doctrans"
//	    "github.com/ZaguanLabs/doctrans/format"
//	    "github.com/ZaguanLabs/doctrans/provider"
//	)
//
//	func main() {
//	    p := provider.NewOpenAIProvider(provider.OpenAIConfig{
//	        APIKey: os.Getenv("OPENAI_API_KEY"),
//	    })
//
//	    doc, err := format.DefaultRegistry().Extract("survey.xlsx", data)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    t := doctrans.NewTranslator(p)
//	    result, err := t.Run(context.Background(), doc, doctrans.Auto)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    out, err := format.Serialize(result.Document, "survey.xlsx")
//	    // out.FileName == "translated_survey.xlsx"
//	}
package doctrans
