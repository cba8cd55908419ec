// Package featurebook loads the feature catalog: the list of features an
// application knows about, with their in-app defaults.
//
// A catalog is an array of records:
//
//	[
//	  {"feature_key": "dark_mode", "default_value": "false", "value_type": "boolean"},
//	  {"feature_key": "max_items", "default_value": "25", "value_type": "long", "owner": "firebase"}
//	]
//
// value_type is one of text, long, boolean or double, in any case. JSON
// documents are checked against an embedded JSON Schema before mapping; YAML
// documents carry the same records and go through the same schema. The schema
// only checks document shape (ErrInvalidCatalog). Mapper turns records into
// feature.Feature values and reports bad keys, unknown types and unparseable
// defaults as ErrInvalidMetadata.
//
// Sources:
//
//   - MemorySource for catalogs built in code.
//   - FileSource via NewJSONSource / NewYAMLSource (any fs.FS, including
//     embed.FS) or NewFileSource (a path on disk, format by extension).
//   - S3Source for catalogs published to S3 or an S3-compatible store.
package featurebook
