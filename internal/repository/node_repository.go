package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"swasthya-admin/internal/domain"
)

// NodeRepository is the persistence accessor for algorithm nodes. Every
// method is scoped by vertical; all verticals live in one table.
type NodeRepository interface {
	Create(ctx context.Context, node *domain.AlgorithmNode) error
	GetByID(ctx context.Context, vertical domain.Vertical, id uuid.UUID) (*domain.AlgorithmNode, error)
	ListChildren(ctx context.Context, vertical domain.Vertical, parentID uuid.UUID) ([]domain.AlgorithmNode, error)
	ListRoots(ctx context.Context, vertical domain.Vertical, activatedOnly bool) ([]domain.AlgorithmNode, error)
	List(ctx context.Context, vertical domain.Vertical, params domain.PaginationParams) ([]domain.AlgorithmNode, int64, error)
	Update(ctx context.Context, node *domain.AlgorithmNode) error
	SetActivated(ctx context.Context, vertical domain.Vertical, id uuid.UUID, activated bool) error
	SoftDelete(ctx context.Context, vertical domain.Vertical, id uuid.UUID) error
	HardDelete(ctx context.Context, vertical domain.Vertical, id uuid.UUID) error
	// MarkNotified flips send_initial_notification to true only if it is
	// currently false. Returns true when this call won the flip.
	MarkNotified(ctx context.Context, vertical domain.Vertical, id uuid.UUID) (bool, error)
}

type nodeRepository struct {
	db *sqlx.DB
}

func NewNodeRepository(db *sqlx.DB) NodeRepository {
	return &nodeRepository{db: db}
}

const nodeColumns = `id, vertical, parent_id, master_node_id, title, description,
	node_type, icon, header, sub_header, "index", is_expandable, has_options, time_spent,
	redirect_algo_type, redirect_node_id,
	state_ids, is_all_state, cadre_ids, is_all_cadre, cadre_type,
	activated, send_initial_notification,
	created_by, updated_by, deleted_at, created_at, updated_at`

func (r *nodeRepository) Create(ctx context.Context, node *domain.AlgorithmNode) error {
	query := `
		INSERT INTO algorithm_nodes (id, vertical, parent_id, master_node_id, title, description,
			node_type, icon, header, sub_header, "index", is_expandable, has_options, time_spent,
			redirect_algo_type, redirect_node_id,
			state_ids, is_all_state, cadre_ids, is_all_cadre, cadre_type,
			activated, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		node.ID, node.Vertical, node.ParentID, node.MasterNodeID, node.Title, node.Description,
		node.NodeType, node.Icon, node.Header, node.SubHeader, node.Index,
		node.IsExpandable, node.HasOptions, node.TimeSpent,
		node.RedirectAlgoType, node.RedirectNodeID,
		node.StateIDs, node.IsAllState, node.CadreIDs, node.IsAllCadre, node.CadreType,
		node.Activated, node.CreatedBy,
	).Scan(&node.CreatedAt, &node.UpdatedAt)
}

func (r *nodeRepository) GetByID(ctx context.Context, vertical domain.Vertical, id uuid.UUID) (*domain.AlgorithmNode, error) {
	var node domain.AlgorithmNode
	query := `SELECT ` + nodeColumns + ` FROM algorithm_nodes
		WHERE id = $1 AND vertical = $2 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &node, query, id, vertical)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &node, nil
}

func (r *nodeRepository) ListChildren(ctx context.Context, vertical domain.Vertical, parentID uuid.UUID) ([]domain.AlgorithmNode, error) {
	var nodes []domain.AlgorithmNode
	query := `SELECT ` + nodeColumns + ` FROM algorithm_nodes
		WHERE parent_id = $1 AND vertical = $2 AND deleted_at IS NULL
		ORDER BY "index" ASC, created_at ASC`

	err := r.db.SelectContext(ctx, &nodes, query, parentID, vertical)
	return nodes, err
}

func (r *nodeRepository) ListRoots(ctx context.Context, vertical domain.Vertical, activatedOnly bool) ([]domain.AlgorithmNode, error) {
	var nodes []domain.AlgorithmNode

	if activatedOnly {
		query := `SELECT ` + nodeColumns + ` FROM algorithm_nodes
			WHERE parent_id IS NULL AND vertical = $1 AND activated = true AND deleted_at IS NULL
			ORDER BY "index" ASC, created_at ASC`
		err := r.db.SelectContext(ctx, &nodes, query, vertical)
		return nodes, err
	}

	query := `SELECT ` + nodeColumns + ` FROM algorithm_nodes
		WHERE parent_id IS NULL AND vertical = $1 AND deleted_at IS NULL
		ORDER BY "index" ASC, created_at ASC`
	err := r.db.SelectContext(ctx, &nodes, query, vertical)
	return nodes, err
}

func (r *nodeRepository) List(ctx context.Context, vertical domain.Vertical, params domain.PaginationParams) ([]domain.AlgorithmNode, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM algorithm_nodes WHERE vertical = $1 AND deleted_at IS NULL`
	if err := r.db.GetContext(ctx, &total, countQuery, vertical); err != nil {
		return nil, 0, err
	}

	var nodes []domain.AlgorithmNode
	query := `SELECT ` + nodeColumns + ` FROM algorithm_nodes
		WHERE vertical = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &nodes, query, vertical, params.PageSize, params.Offset())
	return nodes, total, err
}

func (r *nodeRepository) Update(ctx context.Context, node *domain.AlgorithmNode) error {
	query := `
		UPDATE algorithm_nodes
		SET title = $3, description = $4, node_type = $5, icon = $6, header = $7,
			sub_header = $8, "index" = $9, is_expandable = $10, has_options = $11,
			time_spent = $12, redirect_algo_type = $13, redirect_node_id = $14,
			state_ids = $15, is_all_state = $16, cadre_ids = $17, is_all_cadre = $18,
			cadre_type = $19, activated = $20, updated_by = $21, updated_at = NOW()
		WHERE id = $1 AND vertical = $2 AND deleted_at IS NULL
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		node.ID, node.Vertical,
		node.Title, node.Description, node.NodeType, node.Icon, node.Header,
		node.SubHeader, node.Index, node.IsExpandable, node.HasOptions,
		node.TimeSpent, node.RedirectAlgoType, node.RedirectNodeID,
		node.StateIDs, node.IsAllState, node.CadreIDs, node.IsAllCadre,
		node.CadreType, node.Activated, node.UpdatedBy,
	).Scan(&node.UpdatedAt)
}

func (r *nodeRepository) SetActivated(ctx context.Context, vertical domain.Vertical, id uuid.UUID, activated bool) error {
	query := `UPDATE algorithm_nodes SET activated = $3, updated_at = NOW()
		WHERE id = $1 AND vertical = $2 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id, vertical, activated)
	return err
}

func (r *nodeRepository) SoftDelete(ctx context.Context, vertical domain.Vertical, id uuid.UUID) error {
	query := `UPDATE algorithm_nodes SET deleted_at = NOW()
		WHERE id = $1 AND vertical = $2 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id, vertical)
	return err
}

func (r *nodeRepository) HardDelete(ctx context.Context, vertical domain.Vertical, id uuid.UUID) error {
	query := `DELETE FROM algorithm_nodes WHERE id = $1 AND vertical = $2`
	_, err := r.db.ExecContext(ctx, query, id, vertical)
	return err
}

func (r *nodeRepository) MarkNotified(ctx context.Context, vertical domain.Vertical, id uuid.UUID) (bool, error) {
	query := `UPDATE algorithm_nodes SET send_initial_notification = true, updated_at = NOW()
		WHERE id = $1 AND vertical = $2 AND send_initial_notification = false`
	res, err := r.db.ExecContext(ctx, query, id, vertical)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
