package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bodega/internal/infra"
	"bodega/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// contextoSistema is the fixed analyst prompt prepended to every query.
const contextoSistema = `Eres un Analista Logistico experto. Tienes acceso a estas tablas:
- productos (id_prod, nombre, sku, precio_compra, stock_actual, stock_minimo, id_proveedor)
- proveedores (id_prov, nombre, contacto, email, telefono)
- historial_precios (id_hist, id_producto, precio_registrado, fecha)

Tu objetivo es ayudar con resumenes, auditoria de precios y logistica.
Si el usuario te pide una lista o analisis, responde de forma profesional y estructurada.`

const iaContextoCacheTTL = 60 * time.Second

// ErrColaboradorNoDisponible marks a failed or fast-failed call to the
// language-model collaborator. Storage state is never affected by it.
var ErrColaboradorNoDisponible = errors.New("servicio de IA no disponible")

type IAService interface {
	Consultar(ctx context.Context, pregunta string) (string, error)
}

type iaService struct {
	repo   repository.ProductoRepository
	ollama *infra.OllamaClient
	cb     *infra.CircuitBreaker
	rdb    *redis.Client
}

func NewIAService(repo repository.ProductoRepository, ollama *infra.OllamaClient, cb *infra.CircuitBreaker, rdb *redis.Client) IAService {
	return &iaService{repo: repo, ollama: ollama, cb: cb, rdb: rdb}
}

// Consultar projects the inventory context, combines it with the user's
// question and asks the model. The DB read completes before the HTTP call
// starts: no storage-layer lock or transaction is held while awaiting the
// collaborator.
func (s *iaService) Consultar(ctx context.Context, pregunta string) (string, error) {
	contexto, err := s.contextoInventario(ctx)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf("%s\n\nContexto: %s. Consulta: %s", contextoSistema, contexto, pregunta)

	var respuesta string
	err = s.cb.Execute(func() error {
		var genErr error
		respuesta, genErr = s.ollama.Generar(ctx, prompt)
		return genErr
	})
	if err != nil {
		log.Warn().Err(err).Str("estado_breaker", s.cb.State().String()).Msg("consulta IA fallida")
		return "", ErrColaboradorNoDisponible
	}
	return respuesta, nil
}

// contextoInventario returns the JSON projection (nombre, stock_actual,
// stock_minimo per product), served from Redis when a product write has not
// invalidated it. Cache failures fall through to the DB.
func (s *iaService) contextoInventario(ctx context.Context) (string, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, iaContextoCacheKey).Result(); err == nil {
			return cached, nil
		}
	}

	rows, err := s.repo.ListContextoIA(ctx)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return "", err
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, iaContextoCacheKey, string(b), iaContextoCacheTTL).Err(); err != nil {
			log.Debug().Err(err).Msg("no se pudo cachear contexto IA")
		}
	}
	return string(b), nil
}
