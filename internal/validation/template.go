package validation

// specTemplate is written by `architect dab init`. It must stay a valid spec.
const specTemplate = `# Anchor Model specification
#
# An Anchor Model is built from four kinds of elements:
#   anchor  an entity or event, identified by a surrogate key
#   knot    a small shared value domain such as a status or a gender
#   tie     a relationship between two or more anchors
#   nexus   an entity that owns both attributes and roles (no SQL is generated)
#
# Mnemonics are short upper-case codes. Anchor, knot and nexus mnemonics must
# be unique across the whole spec; attribute mnemonics are unique per anchor.
#
# Generate SQL with:
#   architect dab generate spec.yaml --dialect postgres

knot:
  - mnemonic: GEN
    descriptor: Gender
    identity: SMALLINT
    dataRange: VARCHAR(42)

anchor:
  - mnemonic: CU
    descriptor: Customer
    identity: INT
    attribute:
      # A static attribute: exactly one of dataRange or knotRange is set.
      - mnemonic: NAM
        descriptor: Name
        dataRange: VARCHAR(100)
        # timeRange makes the attribute historized: changed_at and
        # recorded_at are added and loads append instead of update.
        timeRange: TIMESTAMP
      # A knotted attribute stores a reference to the knot.
      - mnemonic: GEN
        descriptor: Gender
        knotRange: GEN

    # YAML extension: staging tables feeding this anchor. Each row gets a
    # keyset identity of the form entity@system~tenant|natural_key.
    # With several mappings, lower priority wins; mappings without a
    # priority come last.
    staging_mappings:
      - system: Northwind
        tenant: ACME
        table: stg_nw_customers
        natural_key_columns: [customer_id]
        priority: 1
        columns:
          - name: CU_ID
            type: INT
          - name: customer_id
            type: VARCHAR(10)
          - name: company_name
            type: VARCHAR(100)
            maps_to: NAM
          - name: GEN_ID
            type: SMALLINT
          - name: changed_at
            type: TIMESTAMPTZ

  - mnemonic: OR
    descriptor: Order
    identity: BIGINT

tie:
  # Tie tables are named after their roles, sorted by type and role.
  - role:
      - role: placed
        type: OR
        identifier: true
      - role: by
        type: CU
        identifier: false
    timeRange: TIMESTAMP

# nexus:
#   - mnemonic: EV
#     descriptor: Event
#     identity: INT
#     role:
#       - role: at
#         type: CU
`

// SpecTemplate returns a commented example spec
func SpecTemplate() string {
	return specTemplate
}
