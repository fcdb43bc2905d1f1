package table

import "github.com/hankinsohl/fgdb/biz/dal/model"

func text(name string) Column    { return Column{Name: name, Type: Text} }
func optText(name string) Column { return Column{Name: name, Type: Text, Nullable: true} }
func boolean(name string) Column { return Column{Name: name, Type: Bool} }
func channel(name string) Column { return Column{Name: name, Type: Integer, Check: Between(0, 255)} }

func optInt(name string, c Check) Column {
	return Column{Name: name, Type: Integer, Nullable: true, Check: c}
}

func CraftingCategories(opts ...Option) *Generic[model.CraftingCategoryRow] {
	return New[model.CraftingCategoryRow](Schema{
		Columns:    []Column{text("crafting_category"), text("highest_rarity")},
		PrimaryKey: "crafting_category",
	}, opts...)
}

func Classes(opts ...Option) *Generic[model.ClassRow] {
	return New[model.ClassRow](Schema{
		Columns:    []Column{text("class"), optText("highest_rarity")},
		PrimaryKey: "class",
	}, opts...)
}

func BaseTypes(opts ...Option) *Generic[model.BaseTypeRow] {
	return New[model.BaseTypeRow](Schema{
		Columns: []Column{
			text("base_type"),
			text("class"),
			{Name: "stack_size", Type: Integer, Check: GreaterThan(0)},
			text("liquidity"),
			optText("url"),
		},
		PrimaryKey: "base_type",
	}, opts...)
}

// BaseTypeItems keys rows by the derived <base_type>::<item> composite.
func BaseTypeItems(opts ...Option) *Generic[model.BaseTypeItemRow] {
	return New[model.BaseTypeItemRow](Schema{
		Columns: []Column{
			text("base_type_item"),
			text("base_type"),
			optText("item"),
			boolean("is_unique"),
		},
		PrimaryKey: "base_type_item",
		ForeignKeys: []ForeignKey{
			{Column: "base_type", RefTable: model.TableBaseTypes, RefColumn: "base_type"},
		},
	}, opts...)
}

func ArmorTypes(opts ...Option) *Generic[model.ArmorTypeRow] {
	return New[model.ArmorTypeRow](Schema{
		Columns:    []Column{text("base_type"), text("armor_type")},
		PrimaryKey: "base_type",
		ForeignKeys: []ForeignKey{
			{Column: "base_type", RefTable: model.TableBaseTypes, RefColumn: "base_type"},
		},
	}, opts...)
}

// AsyncPrices keys rows by the derived five-part price key.
func AsyncPrices(opts ...Option) *Generic[model.AsyncPriceRow] {
	return New[model.AsyncPriceRow](Schema{
		Columns: []Column{
			text("async_price_key"),
			text("base_type_item"),
			text("base_type"),
			optText("item"),
			optInt("minimum_item_level", Between(0, 100)),
			optInt("gem_level", Between(1, 21)),
			optText("rarity"),
			{Name: "price", Type: Real, Check: AtLeast(0)},
		},
		PrimaryKey: "async_price_key",
		ForeignKeys: []ForeignKey{
			{Column: "base_type_item", RefTable: model.TableBaseTypeItems, RefColumn: "base_type_item"},
			{Column: "base_type", RefTable: model.TableBaseTypes, RefColumn: "base_type"},
		},
	}, opts...)
}

func ExchangePrices(opts ...Option) *Generic[model.ExchangePriceRow] {
	return New[model.ExchangePriceRow](Schema{
		Columns: []Column{
			text("base_type"),
			{Name: "price", Type: Real, Check: AtLeast(0)},
		},
		PrimaryKey: "base_type",
		ForeignKeys: []ForeignKey{
			{Column: "base_type", RefTable: model.TableBaseTypes, RefColumn: "base_type"},
		},
	}, opts...)
}

func Colors(opts ...Option) *Generic[model.ColorRow] {
	return New[model.ColorRow](Schema{
		Columns: []Column{
			text("color"),
			text("url"),
			channel("red"),
			channel("green"),
			channel("blue"),
			channel("alpha"),
		},
		PrimaryKey: "color",
	}, opts...)
}

func Licenses(opts ...Option) *Generic[model.LicenseRow] {
	return New[model.LicenseRow](Schema{
		Columns:    []Column{text("license"), text("url")},
		PrimaryKey: "license",
	}, opts...)
}

func Sounds(opts ...Option) *Generic[model.SoundRow] {
	return New[model.SoundRow](Schema{
		Columns: []Column{
			text("sound"),
			text("file_name"),
			text("original_file_name"),
			text("source"),
			text("composer"),
			boolean("is_modified"),
			text("url"),
			text("license"),
		},
		PrimaryKey: "sound",
		ForeignKeys: []ForeignKey{
			{Column: "license", RefTable: model.TableLicenses, RefColumn: "license"},
		},
	}, opts...)
}

func ActionSets(opts ...Option) *Generic[model.ActionSetRow] {
	return New[model.ActionSetRow](Schema{
		Columns: []Column{
			text("action_set"),
			boolean("is_template_compatible"),
			optInt("font_size", Between(18, 45)),
			text("text_color"),
			text("border_color"),
			optText("play_effect_color"),
			text("background_color"),
			optText("minimap_icon_shape"),
			optInt("minimap_icon_size", Between(0, 2)),
			optText("minimap_icon_color"),
			optInt("volume", Between(0, 300)),
			optText("stock_sound"),
			optText("custom_sound"),
		},
		PrimaryKey: "action_set",
		ForeignKeys: []ForeignKey{
			{Column: "background_color", RefTable: model.TableColors, RefColumn: "color"},
			{Column: "custom_sound", RefTable: model.TableSounds, RefColumn: "sound"},
		},
	}, opts...)
}

// All returns one descriptor per catalog table in dependency order.
func All(opts ...Option) []Table {
	return []Table{
		CraftingCategories(opts...),
		Classes(opts...),
		BaseTypes(opts...),
		BaseTypeItems(opts...),
		ArmorTypes(opts...),
		AsyncPrices(opts...),
		ExchangePrices(opts...),
		Colors(opts...),
		Licenses(opts...),
		Sounds(opts...),
		ActionSets(opts...),
	}
}
