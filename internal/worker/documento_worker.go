package worker

// documento_worker.go
// Processes invoice document jobs from QueueDocumentos: renders the B2B
// invoice PDF and, when the dealer has an email on file, enqueues an
// email job with the document attached.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fermanzolido/autitos/internal/infra"
	"github.com/fermanzolido/autitos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type DocumentoWorker struct {
	facturaRepo       repository.FacturaRepository
	vehiculoRepo      repository.VehiculoRepository
	concesionarioRepo repository.ConcesionarioRepository
	dispatcher        *Dispatcher
	pdfStoragePath    string
}

func NewDocumentoWorker(
	facturaRepo repository.FacturaRepository,
	vehiculoRepo repository.VehiculoRepository,
	concesionarioRepo repository.ConcesionarioRepository,
	dispatcher *Dispatcher,
	pdfStoragePath string,
) *DocumentoWorker {
	return &DocumentoWorker{
		facturaRepo:       facturaRepo,
		vehiculoRepo:      vehiculoRepo,
		concesionarioRepo: concesionarioRepo,
		dispatcher:        dispatcher,
		pdfStoragePath:    pdfStoragePath,
	}
}

// Process renders the PDF for one invoice. Safe to re-run: a factura
// that already carries a pdf_path is skipped.
func (w *DocumentoWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload DocumentoJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("documento_worker: invalid payload")
		return nil // malformed jobs are not retryable
	}

	facturaID, err := uuid.Parse(payload.FacturaID)
	if err != nil {
		log.Error().Str("factura_id", payload.FacturaID).Msg("documento_worker: invalid factura_id")
		return nil
	}

	factura, err := w.facturaRepo.FindByID(ctx, facturaID)
	if err != nil {
		return fmt.Errorf("documento_worker: factura %s: %w", payload.FacturaID, err)
	}
	if factura.PDFPath != nil && *factura.PDFPath != "" {
		log.Debug().Str("factura_id", payload.FacturaID).Msg("documento_worker: PDF already generated, skipping")
		return nil
	}

	vehiculo, err := w.vehiculoRepo.FindByID(ctx, factura.VehiculoID)
	if err != nil {
		return fmt.Errorf("documento_worker: vehiculo %s: %w", factura.VehiculoID, err)
	}
	concesionario, err := w.concesionarioRepo.FindByID(ctx, factura.ConcesionarioID)
	if err != nil {
		return fmt.Errorf("documento_worker: concesionario %s: %w", factura.ConcesionarioID, err)
	}

	pdfPath, err := infra.GenerateFacturaPDF(factura, vehiculo, concesionario, w.pdfStoragePath)
	if err != nil {
		return fmt.Errorf("documento_worker: PDF generation: %w", err)
	}
	if err := w.facturaRepo.UpdatePDFPath(ctx, facturaID, pdfPath); err != nil {
		return fmt.Errorf("documento_worker: store pdf_path: %w", err)
	}
	log.Info().Str("pdf", pdfPath).Str("factura_id", payload.FacturaID).Msg("documento_worker: PDF generated")

	if concesionario.Email != nil && *concesionario.Email != "" {
		emailJob := EmailJobPayload{
			ToEmail: *concesionario.Email,
			Subject: fmt.Sprintf("Factura %s — %s %s", shortID(factura.ID), vehiculo.Marca, vehiculo.Modelo),
			Body: fmt.Sprintf("Adjuntamos la factura por la entrega del vehiculo %s %s (VIN %s).\nImporte: $%s",
				vehiculo.Marca, vehiculo.Modelo, vehiculo.VIN, factura.Precio.StringFixed(2)),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *concesionario.Email).Msg("documento_worker: failed to enqueue email")
		}
	}
	return nil
}

func shortID(id uuid.UUID) string {
	s := id.String()
	return s[:8]
}
