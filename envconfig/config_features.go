// config_features.go - Batch-, Queue- und Tabellen-Einstellungen
//
// Dieses Modul enthaelt:
// - Batch-Limits und Anzahl gleichzeitiger Batches
// - Groesse der Sigmoid-Tabelle fuer Skip-Gram
// - CLI-Defaults fuer Verifikation und Seed
package envconfig

// =============================================================================
// Batch-Einstellungen
// =============================================================================

var (
	// BatchLimit begrenzt die Anzahl Aggregate pro Batch (0 = unbegrenzt)
	// Konfigurierbar via AGG_BATCH_LIMIT
	BatchLimit = Uint("AGG_BATCH_LIMIT", 512)

	// MaxBatches begrenzt gleichzeitig ausgefuehrte Batches pro Executor
	// Konfigurierbar via AGG_MAX_BATCHES
	MaxBatches = Uint("AGG_MAX_BATCHES", 4)
)

// =============================================================================
// Kernel-Einstellungen
// =============================================================================

var (
	// ExpTableSize setzt die Groesse der Sigmoid-Tabelle
	// Konfigurierbar via AGG_EXP_TABLE_SIZE
	ExpTableSize = Uint("AGG_EXP_TABLE_SIZE", 1000)

	// VerifyBatches vergleicht Batch-Ergebnisse mit sequentieller Ausfuehrung (CLI)
	// Konfigurierbar via AGG_VERIFY
	VerifyBatches = Bool("AGG_VERIFY")

	// Seed ist der Default-Seed fuer erzeugte Arbeitslasten (CLI)
	// Konfigurierbar via AGG_SEED
	Seed = Uint64("AGG_SEED", 1)
)
