// Package document provides a tag-preserving YAML codec and the generic
// value model it decodes into.
//
// The site configuration this tool rewrites carries custom YAML tags
// (environment-variable references such as !ENV, and object references such
// as tag:yaml.org,2002:python/name:...) that a plain map[string]any round
// trip would destroy. Decoding therefore produces an explicit value model:
//
//   - Scalar: a plain value with its resolved native tag
//   - Sequence: an ordered list of values
//   - Mapping: an insertion-ordered string-keyed map
//   - Tagged: a value whose tag is not part of the native YAML type system,
//     kept verbatim together with its scalar or sequence payload
//
// Encoding walks the model back into yaml.Node trees, so key order and tag
// identity survive a decode/encode cycle unchanged.
//
// The Codec is instance-scoped: no package-level constructor or representer
// registration, so concurrent or repeated use cannot interfere across runs.
package document
