package elastic

// DefaultIndexName is the index holding listing documents.
const DefaultIndexName = "paper_listings"

// indexMapping returns the settings and mappings for the listings index.
//
// The autocomplete analyzer pair is asymmetric on purpose: edge n-grams
// (2..10, letters+digits) at index time, a plain lowercase tokenizer at
// search time, the standard edge-ngram prefix search pattern. It drives the
// completion suggest field; Make/Grade/Brand and stock_description carry
// search_as_you_type subfields for incremental-query matching instead.
func indexMapping() string {
	return `{
  "settings": {
    "number_of_shards": 1,
    "number_of_replicas": 0,
    "analysis": {
      "analyzer": {
        "autocomplete": {
          "type": "custom",
          "tokenizer": "autocomplete_tokenizer",
          "filter": ["lowercase"]
        },
        "autocomplete_search": {
          "type": "custom",
          "tokenizer": "lowercase"
        }
      },
      "tokenizer": {
        "autocomplete_tokenizer": {
          "type": "edge_ngram",
          "min_gram": 2,
          "max_gram": 10,
          "token_chars": ["letter", "digit"]
        }
      }
    }
  },
  "mappings": {
    "properties": {
      "TransID":   { "type": "keyword" },
      "Make":      { "type": "text", "fields": { "keyword": { "type": "keyword", "ignore_above": 256 }, "autocomplete": { "type": "search_as_you_type", "max_shingle_size": 3 } } },
      "Grade":     { "type": "text", "fields": { "keyword": { "type": "keyword", "ignore_above": 256 }, "autocomplete": { "type": "search_as_you_type", "max_shingle_size": 3 } } },
      "Brand":     { "type": "text", "fields": { "keyword": { "type": "keyword", "ignore_above": 256 }, "autocomplete": { "type": "search_as_you_type", "max_shingle_size": 3 } } },
      "GSM":       { "type": "integer" },
      "Deckle_mm": { "type": "float" },
      "grain_mm":  { "type": "float" },
      "groupID":     { "type": "keyword" },
      "memberID":    { "type": "keyword" },
      "StockStatus": { "type": "keyword" },
      "OfferUnit":   { "type": "keyword" },
      "Seller_comments":   { "type": "text", "analyzer": "standard" },
      "stock_description": { "type": "text", "analyzer": "standard", "fields": { "autocomplete": { "type": "search_as_you_type", "max_shingle_size": 4 } } },
      "OfferPrice": { "type": "float" },
      "quantity":   { "type": "float" },
      "created_by_name":    { "type": "text", "fields": { "keyword": { "type": "keyword" } } },
      "created_by_company": { "type": "text", "fields": { "keyword": { "type": "keyword" } } },
      "deal_created_at": { "type": "date" },
      "deal_updated_at": { "type": "date" },
      "dimensions":       { "type": "text" },
      "full_description": { "type": "text" },
      "suggest": {
        "type": "completion",
        "analyzer": "autocomplete",
        "search_analyzer": "autocomplete_search",
        "contexts": [ { "name": "category", "type": "category" } ]
      }
    }
  }
}`
}
