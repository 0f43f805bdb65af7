package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sheetflow/dds_bot/internal/model"
)

const dateLayout = "02.01.2006"

// ErrUnauthorized возвращается, когда пользователя нет в ростере доступа
var ErrUnauthorized = errors.New("user is not in the access roster")

// ErrAdminOnly возвращается на операции, доступные только администраторам
var ErrAdminOnly = errors.New("operation is admin-only")

// Directory — справочник: ростер доступа и списки для шагов выбора.
// Списки читаются заново при каждом входе на шаг выбора и живут только
// до выбора пользователя; устаревание между чтением и выбором допустимо.
type Directory interface {
	Lookup(ctx context.Context, userID int64) (model.User, bool, error)
	Wallets(ctx context.Context) ([]string, error)
	Directions(ctx context.Context) ([]string, error)
	Categories(ctx context.Context, articleType string, excludeTransfers bool) ([]string, error)
}

// Ledger — реестр ДДС. Ошибка Append означает "строка не записана",
// пока более поздняя дозапись явно не докажет обратное.
type Ledger interface {
	Append(ctx context.Context, rec model.Record) (int, error)
	AttachLink(ctx context.Context, row int, link string) error
	Records(ctx context.Context) ([]model.Record, error)
}

// AttachmentStore принимает файл чека и возвращает публичную ссылку
type AttachmentStore interface {
	Upload(ctx context.Context, data []byte, name, description string) (string, error)
}

// Engine — движок диалога: хранит сессию каждого пользователя,
// разбирает входящие события по текущему шагу, валидирует ввод
// и в нужные моменты обращается к справочнику, реестру и хранилищу чеков.
//
// Движок обрабатывает одно событие пользователя целиком, включая внешние
// вызовы, до приема следующего; это обеспечивается порядком доставки
// на транспорте, а не блокировками. События разных пользователей независимы.
type Engine struct {
	dir      Directory
	ledger   Ledger
	files    AttachmentStore
	sessions SessionStore
	log      *zap.Logger
	now      func() time.Time
}

// NewEngine создает движок диалога
func NewEngine(dir Directory, ledger Ledger, files AttachmentStore, sessions SessionStore, log *zap.Logger) *Engine {
	return &Engine{
		dir:      dir,
		ledger:   ledger,
		files:    files,
		sessions: sessions,
		log:      log,
		now:      time.Now,
	}
}

// Handle обрабатывает одно событие и возвращает следующее сообщение
// пользователю. Ошибки валидации не возвращаются как error: сессия
// остается на том же шаге, пользователь может повторять ввод без
// ограничений. Error сопровождает только ошибки авторизации и внешних
// сервисов; сообщение при этом всегда пригодно для отправки.
func (e *Engine) Handle(ctx context.Context, userID int64, ev model.Event) (model.Prompt, error) {
	// Авторизация проверяется заново на каждом событии, не кэшируется
	user, ok, err := e.dir.Lookup(ctx, userID)
	if err != nil {
		e.log.Error("directory lookup failed", zap.Int64("user_id", userID), zap.Error(err))
		return externalErrorPrompt(), fmt.Errorf("directory lookup: %w", err)
	}
	if !ok {
		return deniedPrompt(userID), ErrUnauthorized
	}

	switch ev := ev.(type) {
	case model.MenuRequested:
		e.sessions.Delete(userID)
		return menuPrompt(user), nil
	case model.Cancel:
		// Отмена идемпотентна: без активной сессии просто рисуем меню
		e.sessions.Delete(userID)
		return cancelledPrompt(user), nil
	case model.OperationChosen:
		return e.startOperation(user, ev.Kind)
	}

	sess, ok := e.sessions.Get(userID)
	if !ok {
		return noSessionPrompt(user), nil
	}

	switch ev := ev.(type) {
	case model.DatePreset:
		return e.handleDatePreset(user, sess, ev.Preset)
	case model.AttachmentDecision:
		return e.handleAttachmentDecision(user, sess, ev.Attach)
	case model.ImageSubmitted:
		return e.handleImage(ctx, user, sess, ev)
	case model.FreeTextInput:
		return e.handleText(ctx, user, sess, ev.Text)
	case model.SelectionChosen:
		return e.handleSelection(ctx, user, sess, ev.Index)
	}

	return noSessionPrompt(user), nil
}

func (e *Engine) startOperation(user model.User, kind model.OperationKind) (model.Prompt, error) {
	if kind == model.KindTransfer && !user.IsAdmin {
		return adminOnlyPrompt(), ErrAdminOnly
	}
	e.sessions.Put(user.ID, model.NewSession(kind))
	return datePrompt(kind), nil
}

func (e *Engine) handleDatePreset(user model.User, sess model.Session, preset model.DatePresetKind) (model.Prompt, error) {
	if sess.Step != model.StepDate {
		return errorPrompt("Сначала завершите текущий шаг."), nil
	}

	switch preset {
	case model.PresetCustom:
		sess.AwaitingCustomDate = true
		e.sessions.Put(user.ID, sess)
		return customDatePrompt(), nil
	case model.PresetYesterday:
		return e.setDate(user, sess, e.now().AddDate(0, 0, -1).Format(dateLayout))
	default:
		return e.setDate(user, sess, e.now().Format(dateLayout))
	}
}

func (e *Engine) setDate(user model.User, sess model.Session, date string) (model.Prompt, error) {
	sess.Draft.Date = date
	sess.AwaitingCustomDate = false
	sess = sess.WithStep(model.StepAmount)
	e.sessions.Put(user.ID, sess)
	return amountPrompt(sess.Kind), nil
}

func (e *Engine) handleText(ctx context.Context, user model.User, sess model.Session, text string) (model.Prompt, error) {
	// Ручной ввод даты имеет приоритет над обычной диспетчеризацией шага
	if sess.AwaitingCustomDate || sess.Step == model.StepDate {
		if !validDate(text) {
			return errorPrompt("Неверный формат даты. Используйте ДД.ММ.ГГГГ\nНапример: 30.08.2025"), nil
		}
		return e.setDate(user, sess, text)
	}

	switch sess.Step {
	case model.StepAmount:
		normalized, ok := normalizeAmount(text)
		if !ok {
			return errorPrompt("Неверный формат суммы. Введите положительное число."), nil
		}
		// Сумма фиксируется только вместе с переходом: при пустом списке
		// следующего шага черновик остается нетронутым
		next := sess
		next.Draft.Amount = normalized
		if sess.Kind == model.KindTransfer {
			return e.enterSelection(ctx, user, next, model.StepDirection)
		}
		return e.enterSelection(ctx, user, next, model.StepWallet)

	case model.StepCounterparty:
		sess.Draft.Counterparty = text
		sess = sess.WithStep(model.StepPurpose)
		e.sessions.Put(user.ID, sess)
		return purposePrompt(sess.Kind), nil

	case model.StepPurpose:
		next := sess
		next.Draft.Purpose = text
		return e.enterSelection(ctx, user, next, model.StepCategory)
	}

	return errorPrompt("Используйте кнопки для выбора варианта."), nil
}

// enterSelection читает список для шага выбора и совершает переход.
// Пустой список блокирует переход: сессия и черновик остаются прежними.
func (e *Engine) enterSelection(ctx context.Context, user model.User, next model.Session, step model.Step) (model.Prompt, error) {
	var (
		items []string
		err   error
	)
	switch step {
	case model.StepDirection:
		items, err = e.dir.Directions(ctx)
	case model.StepCategory:
		items, err = e.dir.Categories(ctx, next.Kind.ArticleType(), true)
	default:
		items, err = e.dir.Wallets(ctx)
	}
	if err != nil {
		e.log.Error("reference list fetch failed", zap.Int64("user_id", user.ID), zap.Error(err))
		return externalErrorPrompt(), fmt.Errorf("fetch reference list: %w", err)
	}
	if len(items) == 0 {
		return errorPrompt(emptyListText(step)), nil
	}

	next = next.WithStep(step).WithOptions(items)
	e.sessions.Put(user.ID, next)
	return selectionPrompt(next.Kind, step, items), nil
}

func emptyListText(step model.Step) string {
	switch step {
	case model.StepDirection:
		return "Список направлений пуст."
	case model.StepCategory:
		return "Список статей пуст."
	}
	return "Список кошельков пуст."
}

func selectionPrompt(kind model.OperationKind, step model.Step, items []string) model.Prompt {
	switch step {
	case model.StepWallet:
		return walletPrompt(kind, items)
	case model.StepDirection:
		return directionPrompt(kind, items)
	case model.StepCategory:
		return categoryPrompt(kind, items)
	case model.StepSourceWallet:
		return sourceWalletPrompt(items)
	default:
		return destWalletPrompt(items)
	}
}

func (e *Engine) handleSelection(ctx context.Context, user model.User, sess model.Session, index int) (model.Prompt, error) {
	if !sess.Step.IsSelection() || len(sess.Options) == 0 {
		return errorPrompt("Сейчас не ожидается выбор из списка."), nil
	}
	if index < 0 || index >= len(sess.Options) {
		return errorPrompt("Недопустимый вариант. Выберите из списка."), nil
	}
	value := sess.Options[index]

	switch sess.Step {
	case model.StepWallet:
		next := sess
		next.Draft.Wallet = value
		return e.enterSelection(ctx, user, next, model.StepDirection)

	case model.StepDirection:
		if sess.Kind == model.KindTransfer {
			next := sess
			next.Draft.Direction = value
			return e.enterSelection(ctx, user, next, model.StepSourceWallet)
		}
		sess.Draft.Direction = value
		sess = sess.WithStep(model.StepCounterparty)
		e.sessions.Put(user.ID, sess)
		return counterpartyPrompt(sess.Kind), nil

	case model.StepCategory:
		sess.Draft.Category = value
		return e.submitSingle(ctx, user, sess)

	case model.StepSourceWallet:
		next := sess
		next.Draft.SourceWallet = value
		return e.enterSelection(ctx, user, next, model.StepDestWallet)

	default: // model.StepDestWallet
		if value == sess.Draft.SourceWallet {
			// Список и прежние поля сохраняются, шаг повторяется
			return errorPrompt("Кошельки не могут быть одинаковыми. Выберите другой кошелек поступления."), nil
		}
		sess.Draft.DestWallet = value
		return e.submitTransfer(ctx, user, sess)
	}
}

// submitSingle записывает одиночную операцию одной строкой реестра.
// После успеха запускается подпоток вложения; до успеха ничего
// не записано и выбор статьи можно повторять.
func (e *Engine) submitSingle(ctx context.Context, user model.User, sess model.Session) (model.Prompt, error) {
	rec := singleRecord(user, sess.Kind, sess.Draft)

	row, err := e.ledger.Append(ctx, rec)
	if err != nil {
		e.sessions.Put(user.ID, sess)
		e.log.Error("ledger append failed",
			zap.Int64("user_id", user.ID),
			zap.String("record_id", rec.ID),
			zap.Error(err))
		return errorPrompt("Не удалось сохранить запись. Попробуйте выбрать статью еще раз."),
			fmt.Errorf("append record: %w", err)
	}

	sess = sess.WithStep(model.StepAttachmentDecision)
	sess.SubmittedRow = row
	e.sessions.Put(user.ID, sess)
	return attachmentDecisionPrompt(rec, row), nil
}

func (e *Engine) handleAttachmentDecision(user model.User, sess model.Session, attach bool) (model.Prompt, error) {
	if sess.Step != model.StepAttachmentDecision {
		return errorPrompt("Сейчас не ожидается решение о чеке."), nil
	}

	if !attach {
		e.sessions.Delete(user.ID)
		return singleDonePrompt(user), nil
	}

	sess = sess.WithStep(model.StepAttachmentUpload)
	sess.AwaitingAttachment = true
	e.sessions.Put(user.ID, sess)
	return uploadPrompt(), nil
}

// handleImage загружает чек и дозаписывает ссылку в уже добавленную
// строку. Базовая запись к этому моменту зафиксирована и при любой
// ошибке здесь не откатывается.
func (e *Engine) handleImage(ctx context.Context, user model.User, sess model.Session, ev model.ImageSubmitted) (model.Prompt, error) {
	if !sess.AwaitingAttachment {
		return errorPrompt("Сейчас не ожидается изображение."), nil
	}

	description := fmt.Sprintf("Чек к записи в строке %d", sess.SubmittedRow)
	link, err := e.files.Upload(ctx, ev.Data, ev.Name, description)
	if err != nil {
		e.log.Error("attachment upload failed", zap.Int64("user_id", user.ID), zap.Error(err))
		return errorPrompt("Не удалось загрузить чек. Запись уже сохранена, попробуйте отправить фото еще раз."),
			fmt.Errorf("upload attachment: %w", err)
	}

	if err := e.ledger.AttachLink(ctx, sess.SubmittedRow, link); err != nil {
		e.log.Error("attach link failed",
			zap.Int64("user_id", user.ID),
			zap.Int("row", sess.SubmittedRow),
			zap.Error(err))
		return errorPrompt("Не удалось записать ссылку на чек. Запись уже сохранена, попробуйте еще раз."),
			fmt.Errorf("attach link: %w", err)
	}

	e.sessions.Delete(user.ID)
	return attachmentDonePrompt(user), nil
}

// submitTransfer записывает перевод двумя строками: сначала приход,
// затем расход. Транзакционной обертки между записями нет: отказ второй
// записи оставляет реестр с одной ногой перевода. Сессия в этом случае
// завершается, чтобы повтор события не продублировал первую ногу;
// расхождение устраняется администратором вручную.
func (e *Engine) submitTransfer(ctx context.Context, user model.User, sess model.Session) (model.Prompt, error) {
	d := sess.Draft

	inCategory, err := e.transferCategory(ctx, model.ArticleTypeInflow)
	if err != nil {
		return externalErrorPrompt(), err
	}
	outCategory, err := e.transferCategory(ctx, model.ArticleTypeOutflow)
	if err != nil {
		return externalErrorPrompt(), err
	}

	in := transferLeg(user, d, d.DestWallet, d.SourceWallet, d.Amount, inCategory)
	out := transferLeg(user, d, d.SourceWallet, d.DestWallet, "-"+d.Amount, outCategory)

	rowIn, err := e.ledger.Append(ctx, in)
	if err != nil {
		// Реестр не тронут, выбор кошелька можно повторить
		e.sessions.Put(user.ID, sess)
		e.log.Error("transfer inbound leg failed", zap.Int64("user_id", user.ID), zap.Error(err))
		return errorPrompt("Не удалось сохранить перевод. Попробуйте выбрать кошелек еще раз."),
			fmt.Errorf("append transfer inbound leg: %w", err)
	}

	rowOut, err := e.ledger.Append(ctx, out)
	if err != nil {
		e.sessions.Delete(user.ID)
		e.log.Error("transfer outbound leg failed, ledger left with one leg",
			zap.Int64("user_id", user.ID),
			zap.Int("inbound_row", rowIn),
			zap.String("inbound_id", in.ID),
			zap.Error(err))
		return errorPrompt(fmt.Sprintf(
				"Перевод записан частично: поступление в строке %d без выбытия. Сообщите администратору.", rowIn)),
			fmt.Errorf("append transfer outbound leg: %w", err)
	}

	e.sessions.Delete(user.ID)
	return transferDonePrompt(user, d, rowIn, rowOut), nil
}

// transferCategory ищет статью перевода нужного типа по маркеру;
// если справочник такой статьи не содержит, имя синтезируется
func (e *Engine) transferCategory(ctx context.Context, articleType string) (string, error) {
	articles, err := e.dir.Categories(ctx, articleType, false)
	if err != nil {
		return "", fmt.Errorf("resolve transfer article: %w", err)
	}
	for _, a := range articles {
		if strings.Contains(a, model.TransferMarker) {
			return a, nil
		}
	}
	return articleType + " — " + model.TransferMarker, nil
}

func singleRecord(user model.User, kind model.OperationKind, d model.Draft) model.Record {
	amount := d.Amount
	if kind == model.KindExpense {
		amount = "-" + amount
	}
	rec := model.Record{
		Date:          d.Date,
		Amount:        amount,
		Wallet:        d.Wallet,
		Direction:     d.Direction,
		Counterparty:  d.Counterparty,
		Purpose:       d.Purpose,
		Category:      d.Category,
		SubmitterName: user.DisplayName(),
		SubmitterID:   user.ID,
	}
	rec.GenerateID()
	return rec
}

func transferLeg(user model.User, d model.Draft, wallet, counterparty, amount, category string) model.Record {
	rec := model.Record{
		Date:          d.Date,
		Amount:        amount,
		Wallet:        wallet,
		Direction:     d.Direction,
		Counterparty:  counterparty,
		Purpose:       model.TransferMarker,
		Category:      category,
		SubmitterName: user.DisplayName(),
		SubmitterID:   user.ID,
	}
	rec.GenerateID()
	return rec
}
