package result

// Record is one evaluation run flattened into a single mapping: the
// run's config_general fields plus one field per scored task from
// results.all. Score values keep whatever shape the file gave them,
// scalar or nested.
type Record map[string]any

// ResultSet holds the records collected in one invocation, in
// traversal order.
type ResultSet []Record
