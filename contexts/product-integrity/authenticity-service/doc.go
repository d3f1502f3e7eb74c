// Package authenticity contains the product authenticity engine: manufacturer
// authorization, the global pause gate, the batch registry and the
// first-scan verification ledger.
//
// The module keeps domain/application logic decoupled from runtime/platform
// concerns through ports and adapter composition.
package authenticity
