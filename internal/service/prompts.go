package service

import (
	"fmt"

	"github.com/sheetflow/dds_bot/internal/model"
)

// Тексты диалога. Сообщения размечены HTML, транспорт отвечает
// за parse_mode и отрисовку клавиатур.

func menuPrompt(user model.User) model.Prompt {
	return model.Prompt{
		Text: fmt.Sprintf(
			"👋 Здравствуйте, %s!\n\nЭтот бот поможет вам вносить данные о финансовых операциях.\n\nВыберите тип операции:",
			user.DisplayName()),
		Keyboard:  model.KeyboardMenu,
		AdminMenu: user.IsAdmin,
	}
}

func cancelledPrompt(user model.User) model.Prompt {
	return model.Prompt{
		Text:      "❌ Операция отменена",
		Keyboard:  model.KeyboardMenu,
		AdminMenu: user.IsAdmin,
	}
}

func deniedPrompt(userID int64) model.Prompt {
	return model.Prompt{
		Text: fmt.Sprintf(
			"🚫 У вас нет доступа к этому боту.\n\nВаш ID: %d\n\nОбратитесь к администратору для получения доступа.",
			userID),
	}
}

func adminOnlyPrompt() model.Prompt {
	return model.Prompt{Text: "❌ Эта функция доступна только администраторам."}
}

func noSessionPrompt(user model.User) model.Prompt {
	return model.Prompt{
		Text:      "Выберите действие:",
		Keyboard:  model.KeyboardMenu,
		AdminMenu: user.IsAdmin,
	}
}

func errorPrompt(text string) model.Prompt {
	return model.Prompt{Text: "❌ " + text}
}

func externalErrorPrompt() model.Prompt {
	return model.Prompt{Text: "❌ Произошла ошибка. Попробуйте снова."}
}

func datePrompt(kind model.OperationKind) model.Prompt {
	total := 6
	if kind == model.KindTransfer {
		total = 5
	}
	return model.Prompt{
		Text: fmt.Sprintf(
			"📅 <b>%s - Шаг 1 из %d: Дата</b>\n\nВыберите дату или введите вручную в формате ДД.ММ.ГГГГ\nНапример: 30.08.2025",
			kind.Title(), total),
		Keyboard: model.KeyboardDate,
	}
}

func customDatePrompt() model.Prompt {
	return model.Prompt{
		Text:     "📅 Введите дату в формате ДД.ММ.ГГГГ\nНапример: 30.08.2025",
		Keyboard: model.KeyboardCancel,
	}
}

func amountPrompt(kind model.OperationKind) model.Prompt {
	if kind == model.KindTransfer {
		return model.Prompt{
			Text:     "💰 <b>Перевод - Шаг 2 из 5: Сумма</b>\n\nВведите сумму перевода:\nНапример: 50000",
			Keyboard: model.KeyboardCancel,
		}
	}
	return model.Prompt{
		Text: fmt.Sprintf(
			"💰 <b>%s - Шаг 2 из 6: Сумма</b>\n\nВведите сумму (только число):\nНапример: 50000",
			kind.Title()),
		Keyboard: model.KeyboardCancel,
	}
}

func walletPrompt(kind model.OperationKind, wallets []string) model.Prompt {
	return model.Prompt{
		Text: fmt.Sprintf(
			"👛 <b>%s - Шаг 3 из 6: Кошелек</b>\n\nВыберите кошелек:", kind.Title()),
		Keyboard: model.KeyboardList,
		Options:  wallets,
	}
}

func directionPrompt(kind model.OperationKind, directions []string) model.Prompt {
	step := "Шаг 4 из 6"
	if kind == model.KindTransfer {
		step = "Шаг 3 из 5"
	}
	return model.Prompt{
		Text: fmt.Sprintf(
			"🎯 <b>%s - %s: Направление бизнеса</b>\n\nВыберите направление:",
			kind.Title(), step),
		Keyboard: model.KeyboardList,
		Options:  directions,
	}
}

func counterpartyPrompt(kind model.OperationKind) model.Prompt {
	return model.Prompt{
		Text: fmt.Sprintf(
			"🤝 <b>%s - Шаг 5 из 6: Контрагент</b>\n\nВведите название контрагента:", kind.Title()),
		Keyboard: model.KeyboardCancel,
	}
}

func purposePrompt(kind model.OperationKind) model.Prompt {
	return model.Prompt{
		Text: fmt.Sprintf(
			"📝 <b>%s - Шаг 6 из 6: Назначение платежа</b>\n\nВведите назначение платежа:", kind.Title()),
		Keyboard: model.KeyboardCancel,
	}
}

func categoryPrompt(kind model.OperationKind, articles []string) model.Prompt {
	return model.Prompt{
		Text: fmt.Sprintf(
			"📊 <b>%s - Выбор статьи</b>\n\nВыберите статью:", kind.Title()),
		Keyboard: model.KeyboardList,
		Options:  articles,
	}
}

func sourceWalletPrompt(wallets []string) model.Prompt {
	return model.Prompt{
		Text:     "📤 <b>Перевод - Шаг 4 из 5: Кошелек выбытия</b>\n\nВыберите кошелек, С которого переводятся средства:",
		Keyboard: model.KeyboardList,
		Options:  wallets,
	}
}

func destWalletPrompt(wallets []string) model.Prompt {
	return model.Prompt{
		Text:     "📥 <b>Перевод - Шаг 5 из 5: Кошелек поступления</b>\n\nВыберите кошелек, НА который переводятся средства:",
		Keyboard: model.KeyboardList,
		Options:  wallets,
	}
}

func attachmentDecisionPrompt(rec model.Record, row int) model.Prompt {
	return model.Prompt{
		Text: fmt.Sprintf(
			"✅ <b>Запись успешно добавлена!</b>\n\n📅 Дата: %s\n💰 Сумма: %s\n👛 Кошелек: %s\n🎯 Направление: %s\n🤝 Контрагент: %s\n📝 Назначение: %s\n📊 Статья: %s\n\nСтрока: %d\n\nПрикрепить чек?",
			rec.Date, rec.Amount, rec.Wallet, rec.Direction, rec.Counterparty, rec.Purpose, rec.Category, row),
		Keyboard: model.KeyboardAttachment,
	}
}

func uploadPrompt() model.Prompt {
	return model.Prompt{
		Text:     "📎 Отправьте фото чека одним изображением:",
		Keyboard: model.KeyboardCancel,
	}
}

func singleDonePrompt(user model.User) model.Prompt {
	return model.Prompt{
		Text:      "✅ Запись сохранена. Выберите следующую операцию:",
		Keyboard:  model.KeyboardMenu,
		AdminMenu: user.IsAdmin,
	}
}

func attachmentDonePrompt(user model.User) model.Prompt {
	return model.Prompt{
		Text:      "✅ Чек прикреплен к записи. Выберите следующую операцию:",
		Keyboard:  model.KeyboardMenu,
		AdminMenu: user.IsAdmin,
	}
}

func transferDonePrompt(user model.User, d model.Draft, rowIn, rowOut int) model.Prompt {
	return model.Prompt{
		Text: fmt.Sprintf(
			"✅ <b>Перевод успешно выполнен!</b>\n\n📅 Дата: %s\n💰 Сумма: %s\n🎯 Направление: %s\n\n📤 Из кошелька: %s (строка %d)\n📥 В кошелек: %s (строка %d)",
			d.Date, d.Amount, d.Direction, d.SourceWallet, rowOut, d.DestWallet, rowIn),
		Keyboard:  model.KeyboardMenu,
		AdminMenu: user.IsAdmin,
	}
}
