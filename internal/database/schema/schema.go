package schema

// SchemaSQL contains the full database schema initialization script
const SchemaSQL = `
-- Players
CREATE TABLE IF NOT EXISTS players (
    id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    full_name VARCHAR(255) NOT NULL,
    what_we_call_you VARCHAR(255) NOT NULL,
    security_token VARCHAR(255) NOT NULL,
    over_13 BOOLEAN NOT NULL,
    year_of_birth BIGINT NOT NULL,
    email VARCHAR(255) NOT NULL
);

-- Mobiles. Owner columns are a tagged union: exactly one is set.
CREATE TABLE IF NOT EXISTS mobiles (
    id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    mobile_type VARCHAR(50) NOT NULL,
    owner_player_id BIGINT REFERENCES players(id) ON DELETE CASCADE,
    owner_mobile_id BIGINT REFERENCES mobiles(id) ON DELETE CASCADE,
    owner_item_id BIGINT,
    owner_asset_id BIGINT,
    what_we_call_you VARCHAR(255) NOT NULL
);

-- Item blueprints come before items so items can reference them.
CREATE TABLE IF NOT EXISTS item_blueprints (
    id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    bake_time_ms BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS items (
    id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    internal_name VARCHAR(255) NOT NULL,
    max_stack_size BIGINT,
    item_type VARCHAR(50) NOT NULL,
    blueprint_id BIGINT REFERENCES item_blueprints(id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS item_blueprint_components (
    id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    item_blueprint_id BIGINT NOT NULL REFERENCES item_blueprints(id) ON DELETE CASCADE,
    component_item_id BIGINT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
    ratio DOUBLE PRECISION NOT NULL
);

-- Attributes. Value columns are a tagged union: exactly one variant is set,
-- where the vector3 variant occupies the three vector3_* columns together.
CREATE TABLE IF NOT EXISTS attributes (
    id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    internal_name VARCHAR(255) NOT NULL,
    visible BOOLEAN NOT NULL,
    attribute_type VARCHAR(50) NOT NULL,
    bool_value BOOLEAN,
    double_value DOUBLE PRECISION,
    vector3_x DOUBLE PRECISION,
    vector3_y DOUBLE PRECISION,
    vector3_z DOUBLE PRECISION,
    asset_id BIGINT
);

CREATE TABLE IF NOT EXISTS attribute_owners (
    id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    attribute_id BIGINT NOT NULL REFERENCES attributes(id) ON DELETE CASCADE,
    player_id BIGINT REFERENCES players(id) ON DELETE CASCADE,
    mobile_id BIGINT REFERENCES mobiles(id) ON DELETE CASCADE,
    item_id BIGINT REFERENCES items(id) ON DELETE CASCADE,
    asset_id BIGINT
);

CREATE TABLE IF NOT EXISTS inventories (
    id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    max_entries BIGINT NOT NULL,
    max_volume DOUBLE PRECISION NOT NULL,
    last_calculated_volume DOUBLE PRECISION NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS inventory_entries (
    id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    inventory_id BIGINT NOT NULL REFERENCES inventories(id) ON DELETE CASCADE,
    item_id BIGINT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
    quantity DOUBLE PRECISION NOT NULL,
    is_max_stacked BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS inventory_owners (
    id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    inventory_id BIGINT NOT NULL REFERENCES inventories(id) ON DELETE CASCADE,
    player_id BIGINT REFERENCES players(id) ON DELETE CASCADE,
    mobile_id BIGINT REFERENCES mobiles(id) ON DELETE CASCADE,
    item_id BIGINT REFERENCES items(id) ON DELETE CASCADE,
    asset_id BIGINT
);

-- Lookup indexes
CREATE INDEX IF NOT EXISTS idx_players_full_name ON players (full_name);
CREATE INDEX IF NOT EXISTS idx_items_internal_name ON items (internal_name);
CREATE INDEX IF NOT EXISTS idx_inventory_entries_inventory_id ON inventory_entries (inventory_id);
CREATE INDEX IF NOT EXISTS idx_inventory_owners_inventory_id ON inventory_owners (inventory_id);
CREATE INDEX IF NOT EXISTS idx_attribute_owners_attribute_id ON attribute_owners (attribute_id);
`
