// internal/catalog/search.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"dealer-benchmark/internal/benchmark/record"
	"dealer-benchmark/internal/common/logger"
)

// SearchSource serves catalog reads from the Elasticsearch vehicle index.
// It powers free-text competitor lookup; the relational store remains the
// system of record.
type SearchSource struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

// NewSearchSource creates a catalog source backed by Elasticsearch.
func NewSearchSource(client *elasticsearch.Client, index string, log logger.Logger) *SearchSource {
	return &SearchSource{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "catalog-search"}),
	}
}

// Get fetches a vehicle document by its catalog id.
func (s *SearchSource) Get(ctx context.Context, id string) (record.Vehicle, error) {
	res, err := s.client.Get(s.index, id,
		s.client.Get.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("get vehicle %s: %w", id, err)
	}
	defer res.Body.Close()

	if res.StatusCode == 404 {
		return nil, ErrNotFound
	}
	if res.IsError() {
		return nil, fmt.Errorf("get vehicle %s: %s", id, res.Status())
	}

	var doc struct {
		Source record.Vehicle `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode vehicle document: %w", err)
	}
	return doc.Source, nil
}

// List searches the vehicle index with the filter.
func (s *SearchSource) List(ctx context.Context, filter Filter) ([]record.Vehicle, error) {
	body, _ := json.Marshal(buildVehicleQuery(filter))

	size := filter.Limit
	if size <= 0 {
		size = defaultListLimit
	}

	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  strings.NewReader(string(body)),
		Size:  &size,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, fmt.Errorf("search vehicles: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search vehicles: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source record.Vehicle `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	vehicles := make([]record.Vehicle, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		vehicles = append(vehicles, hit.Source)
	}
	return vehicles, nil
}

// buildVehicleQuery assembles a bool query from the filter. Free text
// matches brand, model and version with brand boosted highest.
func buildVehicleQuery(filter Filter) map[string]interface{} {
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if filter.Query != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  filter.Query,
				"fields": []string{"marca^3", "modelo^2", "version"},
				"type":   "best_fields",
			},
		})
	}
	if filter.Brand != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"marca.keyword": filter.Brand},
		})
	}
	if filter.Model != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"modelo.keyword": filter.Model},
		})
	}
	if filter.ModelYear != 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"ano_modelo": filter.ModelYear},
		})
	}
	if filter.Segment != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"segmento_display.keyword": filter.Segment},
		})
	}

	boolQuery := map[string]interface{}{}
	if len(mustClauses) > 0 {
		boolQuery["must"] = mustClauses
	} else {
		boolQuery["must"] = []interface{}{
			map[string]interface{}{"match_all": map[string]interface{}{}},
		}
	}
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	return map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
	}
}
