package services

import (
	"errors"
	"regexp"
	"time"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lootopia-service/apperr"
	"lootopia-service/models"
	"lootopia-service/schema"
)

var (
	emailPattern       = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	rolePattern        = regexp.MustCompile(`^(admin|partner|moderator|user)$`)
	hexColorPattern    = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	searchDelayPattern = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)
)

// Catalog owns every entity, association and auth service of the API.
type Catalog struct {
	DB           *gorm.DB
	Entities     []*CrudService
	Associations []*AssociationService
	Auth         *AuthService
	Hunts        *HuntLifecycle
}

func NewCatalog(db *gorm.DB) *Catalog {
	cat := &Catalog{
		DB:    db,
		Auth:  NewAuthService(db),
		Hunts: NewHuntLifecycle(db),
	}
	for _, cfg := range entityConfigs() {
		cat.Entities = append(cat.Entities, NewCrudService(db, cfg))
	}
	for _, cfg := range associationConfigs() {
		cat.Associations = append(cat.Associations, NewAssociationService(db, cfg))
	}
	return cat
}

func userRef(field, message string) Reference {
	return Reference{Field: field, Model: func() interface{} { return &models.User{} }, Message: message}
}

func partnerRef(field string) Reference {
	return Reference{
		Field:   field,
		Model:   func() interface{} { return &models.User{} },
		Where:   "role = ?",
		Args:    []interface{}{models.RolePartner},
		Message: "the specified partner does not exist",
	}
}

func collectionRef() Reference {
	return Reference{
		Field:   "collection_id",
		Model:   func() interface{} { return &models.Collection{} },
		Message: "the specified collection does not exist",
	}
}

func entityConfigs() []EntityConfig {
	return []EntityConfig{
		{
			Kind:     "users",
			New:      func() interface{} { return &models.User{} },
			NewSlice: func() interface{} { return &[]models.User{} },
			Schema: schema.Schema{
				"email":          {Kind: schema.String, Required: true, Pattern: emailPattern},
				"username":       {Kind: schema.String, Required: true},
				"password":       {Kind: schema.String, Nullable: true},
				"role":           {Kind: schema.String, Default: models.RoleUser, Pattern: rolePattern},
				"status":         {Kind: schema.Number, Default: float64(models.UserStatusEnabled)},
				"disabled_start": {Kind: schema.Time, Nullable: true},
				"disabled_end":   {Kind: schema.Time, Nullable: true},
				"money":          {Kind: schema.Number, Default: float64(0)},
				"appearance_id":  {Kind: schema.Number, Nullable: true},
			},
			Uniques:     []Unique{{Field: "email", Message: "a user with this email already exists"}},
			Filters:     map[string]string{"role": "role", "status": "status"},
			CheckCreate: requirePassword,
			Check:       checkSuspensionWindow,
			PostDecode:  hashPassword,
			SoftDelete:  disableUser,
		},
		{
			Kind:     "maps",
			New:      func() interface{} { return &models.Map{} },
			NewSlice: func() interface{} { return &[]models.Map{} },
			Schema: schema.Schema{
				"name":       {Kind: schema.String, Required: true},
				"scale":      {Kind: schema.Number, Default: float64(1)},
				"latitude":   {Kind: schema.Number, Required: true},
				"longitude":  {Kind: schema.Number, Required: true},
				"partner_id": {Kind: schema.Number, Required: true},
			},
			Refs:    []Reference{partnerRef("partner_id")},
			Filters: map[string]string{"partner_id": "partner_id"},
			Dependents: []Dependent{
				{Model: func() interface{} { return &models.Hunt{} }, Column: "map_id", Label: "hunts"},
			},
		},
		{
			Kind:     "hunts",
			New:      func() interface{} { return &models.Hunt{} },
			NewSlice: func() interface{} { return &[]models.Hunt{} },
			Schema: schema.Schema{
				"title":       {Kind: schema.String, Required: true},
				"description": {Kind: schema.String, Default: ""},
				"world":       {Kind: schema.Number, Default: float64(models.HuntWorldVirtual)},
				"duration": {Kind: schema.Time, DefaultFunc: func() interface{} {
					return time.Now().UTC().Add(30 * 24 * time.Hour)
				}},
				"mode":              {Kind: schema.Number, Default: float64(models.HuntModePublic)},
				"max_participants":  {Kind: schema.Number, Default: float64(10)},
				"chat_enabled":      {Kind: schema.Bool, Default: true},
				"map_id":            {Kind: schema.Number, Default: float64(1)},
				"participation_fee": {Kind: schema.Number, Default: float64(0)},
				"search_delay":      {Kind: schema.String, Default: "00:01:00", Pattern: searchDelayPattern},
				"partner_id":        {Kind: schema.Number, Required: true},
				"status":            {Kind: schema.Number, Default: float64(models.HuntStatusDraft)},
			},
			Refs: []Reference{
				partnerRef("partner_id"),
				{Field: "map_id", Model: func() interface{} { return &models.Map{} }, Message: "the specified map does not exist"},
			},
			Filters:    map[string]string{"partner_id": "partner_id", "map_id": "map_id", "status": "status"},
			PostDecode: deriveHuntSlug,
			Dependents: []Dependent{
				{Model: func() interface{} { return &models.HuntParticipant{} }, Column: "hunt_id", Label: "hunts_participants"},
				{Model: func() interface{} { return &models.HuntArtifact{} }, Column: "hunt_id", Label: "hunt_artifacts"},
				{Model: func() interface{} { return &models.Cache{} }, Column: "hunt_id", Label: "caches"},
			},
		},
		{
			Kind:     "caches",
			New:      func() interface{} { return &models.Cache{} },
			NewSlice: func() interface{} { return &[]models.Cache{} },
			Schema: schema.Schema{
				"hunt_id":     {Kind: schema.Number, Nullable: true},
				"partner_id":  {Kind: schema.Number, Required: true},
				"description": {Kind: schema.String, Default: ""},
				"latitude":    {Kind: schema.Number, Required: true},
				"longitude":   {Kind: schema.Number, Required: true},
				"visible":     {Kind: schema.Bool, Default: true},
				"size":        {Kind: schema.Number, Default: float64(1)},
			},
			Refs: []Reference{
				partnerRef("partner_id"),
				{Field: "hunt_id", Model: func() interface{} { return &models.Hunt{} }, Message: "the specified hunt does not exist"},
			},
			Filters:    map[string]string{"hunt_id": "hunt_id", "partner_id": "partner_id"},
			PostDecode: refuseClosedHuntCache,
		},
		{
			Kind:     "collections",
			New:      func() interface{} { return &models.Collection{} },
			NewSlice: func() interface{} { return &[]models.Collection{} },
			Schema: schema.Schema{
				"name":     {Kind: schema.String, Required: true},
				"admin_id": {Kind: schema.Number, Required: true},
				"status":   {Kind: schema.Number, Default: float64(models.CatalogStatusActive)},
			},
			Refs:    []Reference{userRef("admin_id", "the specified admin does not exist")},
			Filters: map[string]string{"admin_id": "admin_id"},
		},
		{
			Kind:     "themes",
			New:      func() interface{} { return &models.Theme{} },
			NewSlice: func() interface{} { return &[]models.Theme{} },
			Schema: schema.Schema{
				"name":   {Kind: schema.String, Required: true},
				"status": {Kind: schema.Number, Default: float64(models.CatalogStatusActive)},
			},
		},
		{
			Kind:     "illustrations",
			New:      func() interface{} { return &models.Illustration{} },
			NewSlice: func() interface{} { return &[]models.Illustration{} },
			Schema: schema.Schema{
				"name": {Kind: schema.String, Required: true},
				"url":  {Kind: schema.String, Default: ""},
			},
		},
		{
			Kind:     "artifacts",
			New:      func() interface{} { return &models.Artifact{} },
			NewSlice: func() interface{} { return &[]models.Artifact{} },
			Schema: schema.Schema{
				"admin_id":        {Kind: schema.Number, Required: true},
				"type":            {Kind: schema.Number, Nullable: true},
				"theme_id":        {Kind: schema.Number, Nullable: true},
				"rarity":          {Kind: schema.Number, Nullable: true},
				"illustration_id": {Kind: schema.Number, Nullable: true},
				"collection_id":   {Kind: schema.Number, Nullable: true},
				"usage":           {Kind: schema.Number, Nullable: true},
				"status":          {Kind: schema.Number, Default: float64(models.CatalogStatusActive)},
			},
			Refs: []Reference{
				userRef("admin_id", "the specified admin does not exist"),
				{Field: "theme_id", Model: func() interface{} { return &models.Theme{} }, Message: "the specified theme does not exist"},
				{Field: "illustration_id", Model: func() interface{} { return &models.Illustration{} }, Message: "the specified illustration does not exist"},
				collectionRef(),
			},
			Filters: map[string]string{"admin_id": "admin_id", "collection_id": "collection_id", "theme_id": "theme_id"},
		},
		{
			Kind:     "badges",
			New:      func() interface{} { return &models.Badge{} },
			NewSlice: func() interface{} { return &[]models.Badge{} },
			Schema: schema.Schema{
				"name":          {Kind: schema.String, Required: true},
				"admin_id":      {Kind: schema.Number, Required: true},
				"collection_id": {Kind: schema.Number, Nullable: true},
				"type":          {Kind: schema.Number, Nullable: true},
				"rarity":        {Kind: schema.Number, Nullable: true},
				"status":        {Kind: schema.Number, Default: float64(models.CatalogStatusActive)},
			},
			Refs:    []Reference{userRef("admin_id", "the specified admin does not exist"), collectionRef()},
			Filters: map[string]string{"admin_id": "admin_id", "collection_id": "collection_id"},
			Dependents: []Dependent{
				{Model: func() interface{} { return &models.UserBadge{} }, Column: "badge_id", Label: "user_badges"},
			},
		},
		{
			Kind:     "offers",
			New:      func() interface{} { return &models.Offer{} },
			NewSlice: func() interface{} { return &[]models.Offer{} },
			Schema: schema.Schema{
				"name":          {Kind: schema.String, Required: true},
				"admin_id":      {Kind: schema.Number, Required: true},
				"collection_id": {Kind: schema.Number, Nullable: true},
				"amount":        {Kind: schema.Number, Default: float64(0)},
				"status":        {Kind: schema.Number, Default: float64(models.CatalogStatusActive)},
			},
			Refs:    []Reference{userRef("admin_id", "the specified admin does not exist"), collectionRef()},
			Filters: map[string]string{"admin_id": "admin_id", "collection_id": "collection_id"},
			Dependents: []Dependent{
				{Model: func() interface{} { return &models.UserOffer{} }, Column: "offer_id", Label: "user_offers"},
			},
		},
		{
			Kind:     "other_rewards",
			New:      func() interface{} { return &models.OtherReward{} },
			NewSlice: func() interface{} { return &[]models.OtherReward{} },
			Schema: schema.Schema{
				"name":          {Kind: schema.String, Required: true},
				"admin_id":      {Kind: schema.Number, Required: true},
				"collection_id": {Kind: schema.Number, Nullable: true},
				"type":          {Kind: schema.Number, Nullable: true},
				"status":        {Kind: schema.Number, Default: float64(models.CatalogStatusActive)},
			},
			Refs:    []Reference{userRef("admin_id", "the specified admin does not exist"), collectionRef()},
			Filters: map[string]string{"admin_id": "admin_id", "collection_id": "collection_id"},
			Dependents: []Dependent{
				{Model: func() interface{} { return &models.UserOtherReward{} }, Column: "other_reward_id", Label: "user_other_rewards"},
			},
		},
		{
			Kind:     "transactions",
			New:      func() interface{} { return &models.Transaction{} },
			NewSlice: func() interface{} { return &[]models.Transaction{} },
			Schema: schema.Schema{
				"sender_id":   {Kind: schema.Number, Required: true},
				"receiver_id": {Kind: schema.Number, Required: true},
				"type":        {Kind: schema.Number, Default: float64(models.TransactionTypeTransfer)},
				"amount":      {Kind: schema.Number, Required: true},
			},
			Refs: []Reference{
				userRef("sender_id", "the specified sender does not exist"),
				userRef("receiver_id", "the specified receiver does not exist"),
			},
			Filters:   map[string]string{"sender_id": "sender_id", "receiver_id": "receiver_id"},
			Check:     checkTransfer,
			Persist:   applyTransfer,
			Immutable: true,
		},
		{
			Kind:     "partner_colors",
			New:      func() interface{} { return &models.PartnerColor{} },
			NewSlice: func() interface{} { return &[]models.PartnerColor{} },
			Schema: schema.Schema{
				"partner_id": {Kind: schema.Number, Required: true},
				"hex_color":  {Kind: schema.String, Required: true, Pattern: hexColorPattern},
			},
			Refs:      []Reference{partnerRef("partner_id")},
			Filters:   map[string]string{"partner_id": "partner_id"},
			PreDelete: keepLastColor,
		},
		{
			Kind:     "faq_entries",
			New:      func() interface{} { return &models.FaqEntry{} },
			NewSlice: func() interface{} { return &[]models.FaqEntry{} },
			Schema: schema.Schema{
				"question":  {Kind: schema.String, Required: true},
				"answer":    {Kind: schema.String, Default: ""},
				"is_active": {Kind: schema.Bool, Default: true},
			},
		},
		{
			Kind:     "help_requests",
			New:      func() interface{} { return &models.HelpRequest{} },
			NewSlice: func() interface{} { return &[]models.HelpRequest{} },
			Schema: schema.Schema{
				"user_id":     {Kind: schema.Number, Required: true},
				"subject":     {Kind: schema.String, Required: true},
				"message":     {Kind: schema.String, Default: ""},
				"is_resolved": {Kind: schema.Bool, Default: false},
			},
			Refs:    []Reference{userRef("user_id", "the specified user does not exist")},
			Filters: map[string]string{"user_id": "user_id"},
		},
	}
}

func associationConfigs() []AssociationConfig {
	return []AssociationConfig{
		{
			Kind:     "user_badges",
			New:      func() interface{} { return &models.UserBadge{} },
			NewSlice: func() interface{} { return &[]models.UserBadge{} },
			FieldA:   "user_id",
			FieldB:   "badge_id",
			RefA:     userRef("user_id", "the specified user does not exist"),
			RefB:     Reference{Field: "badge_id", Model: func() interface{} { return &models.Badge{} }, Message: "the specified badge does not exist"},
			Filters:  map[string]string{"user_id": "user_id", "badge_id": "badge_id"},
			Preloads: []string{"User", "Badge"},
			Conflict: "this user already holds this badge",
		},
		{
			Kind:     "user_artifacts",
			New:      func() interface{} { return &models.UserArtifact{} },
			NewSlice: func() interface{} { return &[]models.UserArtifact{} },
			FieldA:   "user_id",
			FieldB:   "artifact_id",
			RefA:     userRef("user_id", "the specified user does not exist"),
			RefB:     Reference{Field: "artifact_id", Model: func() interface{} { return &models.Artifact{} }, Message: "the specified artifact does not exist"},
			Filters:  map[string]string{"user_id": "user_id", "artifact_id": "artifact_id"},
			Preloads: []string{"User", "Artifact"},
			Conflict: "this user already holds this artifact",
		},
		{
			Kind:     "user_offers",
			New:      func() interface{} { return &models.UserOffer{} },
			NewSlice: func() interface{} { return &[]models.UserOffer{} },
			FieldA:   "user_id",
			FieldB:   "offer_id",
			RefA:     userRef("user_id", "the specified user does not exist"),
			RefB: Reference{
				Field: "offer_id",
				Model: func() interface{} { return &models.Offer{} },
				Where: "status = ?", Args: []interface{}{models.CatalogStatusActive},
				Message: "the specified offer does not exist or is not active",
			},
			Filters:  map[string]string{"user_id": "user_id", "offer_id": "offer_id"},
			Preloads: []string{"User", "Offer"},
			Conflict: "this user already claimed this offer",
		},
		{
			Kind:     "user_other_rewards",
			New:      func() interface{} { return &models.UserOtherReward{} },
			NewSlice: func() interface{} { return &[]models.UserOtherReward{} },
			FieldA:   "user_id",
			FieldB:   "other_reward_id",
			RefA:     userRef("user_id", "the specified user does not exist"),
			RefB:     Reference{Field: "other_reward_id", Model: func() interface{} { return &models.OtherReward{} }, Message: "the specified reward does not exist"},
			Filters:  map[string]string{"user_id": "user_id", "other_reward_id": "other_reward_id"},
			Preloads: []string{"User", "OtherReward"},
			Conflict: "this user already holds this reward",
		},
		{
			Kind:     "hunt_artifacts",
			New:      func() interface{} { return &models.HuntArtifact{} },
			NewSlice: func() interface{} { return &[]models.HuntArtifact{} },
			FieldA:   "hunt_id",
			FieldB:   "artifact_id",
			RefA:     Reference{Field: "hunt_id", Model: func() interface{} { return &models.Hunt{} }, Message: "the specified hunt does not exist"},
			RefB:     Reference{Field: "artifact_id", Model: func() interface{} { return &models.Artifact{} }, Message: "the specified artifact does not exist"},
			Filters:  map[string]string{"hunt_id": "hunt_id", "artifact_id": "artifact_id"},
			Preloads: []string{"Hunt", "Artifact"},
			PreCreate: func(tx *gorm.DB, payload map[string]interface{}) error {
				return refuseClosedHunt(tx, payload)
			},
			Conflict: "this artifact is already attached to this hunt",
		},
		{
			Kind:     "hunts_participants",
			New:      func() interface{} { return &models.HuntParticipant{} },
			NewSlice: func() interface{} { return &[]models.HuntParticipant{} },
			FieldA:   "hunt_id",
			FieldB:   "user_id",
			RefA:     Reference{Field: "hunt_id", Model: func() interface{} { return &models.Hunt{} }, Message: "the specified hunt does not exist"},
			RefB:     userRef("user_id", "the specified user does not exist"),
			Filters:  map[string]string{"hunt_id": "hunt_id", "user_id": "user_id"},
			Preloads: []string{"Hunt", "User"},
			Resolve:  resolveParticipant,
			PreCreate: func(tx *gorm.DB, payload map[string]interface{}) error {
				if err := refuseClosedHunt(tx, payload); err != nil {
					return err
				}
				return refuseFullHunt(tx, payload)
			},
			Updatable: []string{"excluded"},
			Conflict:  "this user already participates in this hunt",
		},
	}
}

func requirePassword(payload map[string]interface{}) []apperr.FieldViolation {
	if v, ok := payload["password"].(string); !ok || v == "" {
		return []apperr.FieldViolation{{Field: "password", Message: "password is required"}}
	}
	return nil
}

// checkSuspensionWindow enforces disabled_end > disabled_start when both are
// set. The merged record carries times as RFC3339 strings.
func checkSuspensionWindow(payload map[string]interface{}) []apperr.FieldViolation {
	start, okStart := timeValue(payload["disabled_start"])
	end, okEnd := timeValue(payload["disabled_end"])
	if okStart && okEnd && !end.After(start) {
		return []apperr.FieldViolation{{Field: "disabled_end", Message: "disabled_end must be after disabled_start"}}
	}
	return nil
}

func timeValue(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		return parsed, err == nil
	default:
		return time.Time{}, false
	}
}

func hashPassword(tx *gorm.DB, rec interface{}, payload map[string]interface{}) error {
	raw, ok := payload["password"].(string)
	if !ok || raw == "" {
		return nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal(err)
	}
	rec.(*models.User).Password = string(hashed)
	return nil
}

func disableUser(tx *gorm.DB, rec interface{}) error {
	now := time.Now().UTC()
	err := tx.Model(rec).Updates(map[string]interface{}{
		"status":         models.UserStatusDisabled,
		"disabled_start": now,
		"updated_at":     now,
	}).Error
	if err != nil {
		return apperr.FromDB(err)
	}
	return nil
}

func deriveHuntSlug(tx *gorm.DB, rec interface{}, payload map[string]interface{}) error {
	h := rec.(*models.Hunt)
	h.Slug = slug.Make(h.Title)
	return nil
}

func checkTransfer(payload map[string]interface{}) []apperr.FieldViolation {
	var violations []apperr.FieldViolation
	if amount, ok := payload["amount"].(float64); ok && amount <= 0 {
		violations = append(violations, apperr.FieldViolation{Field: "amount", Message: "amount must be positive"})
	}
	sender, okS := payload["sender_id"].(float64)
	receiver, okR := payload["receiver_id"].(float64)
	if okS && okR && sender == receiver {
		violations = append(violations, apperr.FieldViolation{Field: "receiver_id", Message: "receiver_id must differ from sender_id"})
	}
	return violations
}

// applyTransfer moves the amount between the two wallets and records the
// transaction, all inside the surrounding DB transaction. The conditional
// debit keeps the sender balance non-negative even under concurrent
// transfers.
func applyTransfer(tx *gorm.DB, rec interface{}) error {
	t := rec.(*models.Transaction)

	debit := tx.Model(&models.User{}).
		Where("id = ? AND money >= ?", t.SenderID, t.Amount).
		Update("money", gorm.Expr("money - ?", t.Amount))
	if debit.Error != nil {
		return apperr.FromDB(debit.Error)
	}
	if debit.RowsAffected == 0 {
		return apperr.Conflict("insufficient sender balance")
	}

	credit := tx.Model(&models.User{}).
		Where("id = ?", t.ReceiverID).
		Update("money", gorm.Expr("money + ?", t.Amount))
	if credit.Error != nil {
		return apperr.FromDB(credit.Error)
	}

	if err := tx.Create(t).Error; err != nil {
		return apperr.FromDB(err)
	}
	return nil
}

// keepLastColor refuses deleting a partner's only remaining palette color.
func keepLastColor(tx *gorm.DB, rec interface{}) error {
	color := rec.(*models.PartnerColor)
	var count int64
	err := tx.Model(&models.PartnerColor{}).
		Where("partner_id = ?", color.PartnerID).
		Count(&count).Error
	if err != nil {
		return apperr.FromDB(err)
	}
	if count <= 1 {
		return apperr.Conflict("a partner must retain at least one color")
	}
	return nil
}

func refuseClosedHunt(tx *gorm.DB, payload map[string]interface{}) error {
	var hunt models.Hunt
	if err := tx.First(&hunt, "id = ?", payload["hunt_id"]).Error; err != nil {
		return apperr.FromDB(err)
	}
	if hunt.Status == models.HuntStatusClosed {
		return apperr.Conflict("the hunt is closed")
	}
	return nil
}

// refuseClosedHuntCache blocks creating or mutating a cache attached to a
// closed hunt. The merged record decides: detaching (hunt_id set to null)
// stays allowed.
func refuseClosedHuntCache(tx *gorm.DB, rec interface{}, payload map[string]interface{}) error {
	cache := rec.(*models.Cache)
	if cache.HuntID == nil {
		return nil
	}
	var hunt models.Hunt
	if err := tx.First(&hunt, *cache.HuntID).Error; err != nil {
		return apperr.FromDB(err)
	}
	if hunt.Status == models.HuntStatusClosed {
		return apperr.Conflict("the hunt is closed")
	}
	return nil
}

func refuseFullHunt(tx *gorm.DB, payload map[string]interface{}) error {
	var hunt models.Hunt
	if err := tx.First(&hunt, "id = ?", payload["hunt_id"]).Error; err != nil {
		return apperr.FromDB(err)
	}
	if hunt.MaxParticipants <= 0 {
		return nil
	}
	var count int64
	err := tx.Model(&models.HuntParticipant{}).
		Where("hunt_id = ?", hunt.ID).
		Count(&count).Error
	if err != nil {
		return apperr.FromDB(err)
	}
	if count >= int64(hunt.MaxParticipants) {
		return apperr.Conflict("the hunt has reached its participant limit")
	}
	return nil
}

// resolveParticipant accepts email or username in place of a numeric user id
// and rewrites the payload before the standard checks run.
func resolveParticipant(tx *gorm.DB, payload map[string]interface{}) error {
	if _, ok := payload["user_id"]; ok {
		return nil
	}
	email, _ := payload["email"].(string)
	username, _ := payload["username"].(string)
	if email == "" && username == "" {
		return apperr.Validation([]apperr.FieldViolation{
			{Field: "user_id", Message: "user_id, email or username is required"},
		})
	}

	var user models.User
	q := tx.Model(&models.User{})
	if email != "" {
		q = q.Where("email = ?", email)
	} else {
		q = q.Where("username = ?", username)
	}
	if err := q.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("no user matches the provided email or username")
		}
		return apperr.FromDB(err)
	}
	payload["user_id"] = float64(user.ID)
	delete(payload, "email")
	delete(payload, "username")
	return nil
}
