// Package errtypes - Fehler-Taxonomie fuer Aggregate, Kernels und Executor
//
// Enthaelt:
// - ErrArgumentShapeMismatch: falsche Anzahl/Typen von Operanden bei Konstruktion
// - ErrLengthMismatch: inkompatible Array-Laengen fuer den Opcode
// - ErrIndexOutOfRange: Index-Argument ausserhalb des Ziel-Arrays
// - ErrBatchConsumed, ErrBatchFull: Batch-Lebenszyklus
// - ErrUnknownExecutor: unbekannter Executor-Name
//
// Alle Werte sind Sentinels; Aufrufer wrappen mit fmt.Errorf("...: %w", err).
package errtypes

import "errors"

var (
	// ErrArgumentShapeMismatch: Operandenlisten passen nicht zur Aritaet des Opcodes.
	ErrArgumentShapeMismatch = errors.New("argument shape mismatch")

	// ErrLengthMismatch: Operanden-Arrays haben fuer den Opcode inkompatible Laengen.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrIndexOutOfRange: ein Index-Argument zeigt ausserhalb des gueltigen Bereichs.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrBatchConsumed: der Batch wurde bereits an einen Executor uebergeben.
	ErrBatchConsumed = errors.New("batch already consumed")

	// ErrBatchFull: das Limit des Batches ist erreicht.
	ErrBatchFull = errors.New("batch limit reached")

	// ErrUnknownExecutor: kein Executor unter diesem Namen registriert.
	ErrUnknownExecutor = errors.New("unknown executor")
)
